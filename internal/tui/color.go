package tui

import "github.com/charmbracelet/lipgloss"

const (
	Black      = lipgloss.Color("#000000")
	Red        = lipgloss.Color("#FF5353")
	Pink       = lipgloss.Color("205")
	Yellow     = lipgloss.Color("#DBBD70")
	Green      = lipgloss.Color("34")
	LightGreen = lipgloss.Color("86")
	Blue       = lipgloss.Color("63")
	Grey       = lipgloss.Color("#737373")
	LightGrey  = lipgloss.Color("245")
	White      = lipgloss.Color("#ffffff")
)

var (
	DebugLogLevel = Blue
	InfoLogLevel  = lipgloss.AdaptiveColor{Dark: string(LightGreen), Light: string(Green)}
	ErrorLogLevel = Red
	WarnLogLevel  = Yellow

	LogRecordAttributeKey = lipgloss.AdaptiveColor{Dark: string(LightGrey), Light: string(LightGrey)}

	PendingColor = Yellow
	ReadyColor   = lipgloss.AdaptiveColor{Dark: string(LightGreen), Light: string(Green)}
	ErrorColor   = Red

	CurrentBackground = Grey
	CurrentForeground = White

	TitleColor = lipgloss.AdaptiveColor{
		Dark:  "",
		Light: "",
	}
)
