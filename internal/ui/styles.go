package ui

import "github.com/charmbracelet/lipgloss"

// Color palette.
var (
	ColorSuccess   = lipgloss.Color("#00D26A") // green  — success, confirmed
	ColorWarning   = lipgloss.Color("#FFB800") // yellow — pending, warning
	ColorError     = lipgloss.Color("#FF4444") // red    — validation, failure
	ColorAddress   = lipgloss.Color("#00B4D8") // cyan   — addresses, hashes
	ColorValue     = lipgloss.Color("#FFFFFF") // white bold — amounts
	ColorMeta      = lipgloss.Color("#555555") // dim gray — hints, labels
	ColorBorder    = lipgloss.Color("#1E3A5F") // dark blue — UI chrome
	ColorAccent    = lipgloss.Color("#E84142") // Avalanche red — brand accents
	ColorHighlight = lipgloss.Color("#F15BB5") // pink — active preset
)

// Base styles.
var (
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning).Bold(true)
	StyleError   = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	StyleAddress = lipgloss.NewStyle().Foreground(ColorAddress)
	StyleValue   = lipgloss.NewStyle().Foreground(ColorValue).Bold(true)
	StyleMeta    = lipgloss.NewStyle().Foreground(ColorMeta)
	StyleAccent  = lipgloss.NewStyle().Foreground(ColorAccent).Bold(true)

	StyleBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	StyleTitle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true).
			MarginBottom(1)

	StyleActive = lipgloss.NewStyle().
			Background(ColorHighlight).
			Foreground(lipgloss.Color("#000000")).
			Bold(true)

	StyleLink = lipgloss.NewStyle().
			Foreground(ColorAddress).
			Underline(true)

	StyleDim = lipgloss.NewStyle().Foreground(ColorMeta)
)

// Banner returns the startup banner.
func Banner() string {
	art := `
  ███████╗███████╗███╗   ██╗██████╗       ██╗████████╗
  ██╔════╝██╔════╝████╗  ██║██╔══██╗      ██║╚══██╔══╝
  ███████╗█████╗  ██╔██╗ ██║██║  ██║█████╗██║   ██║
  ╚════██║██╔══╝  ██║╚██╗██║██║  ██║╚════╝██║   ██║
  ███████║███████╗██║ ╚████║██████╔╝      ██║   ██║
  ╚══════╝╚══════╝╚═╝  ╚═══╝╚═════╝       ╚═╝   ╚═╝`

	tagline := StyleMeta.Render("     USDC transfers on Avalanche Fuji")
	return StyleAccent.Render(art) + "\n" + tagline + "\n"
}

// Success formats a success message.
func Success(msg string) string { return StyleSuccess.Render("✓ " + msg) }

// Warn formats a warning message.
func Warn(msg string) string { return StyleWarning.Render("⚠ " + msg) }

// Err formats an error message.
func Err(msg string) string { return StyleError.Render("✗ " + msg) }

// Addr formats an address.
func Addr(a string) string { return StyleAddress.Render(a) }

// Val formats an amount.
func Val(v string) string { return StyleValue.Render(v) }

// Meta formats hint text.
func Meta(m string) string { return StyleMeta.Render(m) }

// Link formats an explorer URL.
func Link(u string) string { return StyleLink.Render(u) }
