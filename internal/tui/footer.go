package tui

// renderFooter renders the key binding help footer at full terminal width.
// When help is off and an error has been reported, the latest one is shown
// instead of the brief hint.
func renderFooter(app *App) string {
	width := app.width
	if width <= 0 {
		width = 80
	}
	if app.showHelp {
		return StyleDim.Width(width).Render(helpText)
	}
	if app.sink != nil {
		if last := app.sink.Last(); last != nil {
			toast := "Last error " + last.At.Format("15:04:05") + ": " + sanitize(last.Summary)
			return StyleError.Width(width).Render(toast)
		}
	}
	return StyleDim.Width(width).Render("? for help")
}
