package notifier

import (
	"fmt"
	"html"
	"strings"
	"time"

	"SalesEcho/internal/model"
)

// FormatReport formats the listening guide sent with each rendered clip.
func FormatReport(series *model.DailySeries, sum *model.MetricsSummary, ins *model.Insight, p model.RenderParameters) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("🎧 <b>SalesEcho</b> | %s → %s\n\n",
		series.Date(0).Format("2006-01-02"), series.Date(series.Days()-1).Format("2006-01-02")))

	b.WriteString(fmt.Sprintf("Left: traffic (%d sessions, peak %d on day %d)\n",
		sum.TotalSessions, sum.PeakSessions, sum.PeakSessionsDay+1))
	b.WriteString(fmt.Sprintf("Right: revenue echo (%.0f total, peak %.0f on day %d)\n",
		sum.TotalRevenue, sum.PeakRevenue, sum.PeakRevenueDay+1))
	b.WriteString(fmt.Sprintf("Revenue/session: %.2f (range %.2f–%.2f)\n\n",
		sum.RevenuePerSession, sum.ConversionLow, sum.ConversionHigh))

	b.WriteString(fmt.Sprintf("💡 <b>%s</b>\n%s\n", html.EscapeString(ins.Label), html.EscapeString(ins.Commentary)))

	if len(series.Events) > 0 {
		b.WriteString("\n📌 <b>Events:</b>\n")
		for _, e := range series.Events {
			b.WriteString(fmt.Sprintf("  Day %d (%s): %s\n", e.Day+1,
				series.Date(e.Day).Format("Jan 2"), html.EscapeString(e.Label)))
		}
	}

	b.WriteString(fmt.Sprintf("\n⚙️ %s | lag %d day(s) | ticks %s | %.0fs @ %d Hz\n",
		p.Mode, p.LagDays, onOff(p.TicksEnabled), p.DurationSeconds, p.SampleRate))
	return b.String()
}

// FormatCaption is the short caption attached to the audio upload.
func FormatCaption(series *model.DailySeries, ins *model.Insight, p model.RenderParameters, solo string) string {
	return fmt.Sprintf("🎧 %d days, %s, lag %d, %s | %s",
		series.Days(), p.Mode, p.LagDays, solo, html.EscapeString(ins.Label))
}

// FormatStatus formats the current session toggles for display.
func FormatStatus(state model.SessionState) string {
	var b strings.Builder
	b.WriteString("🎛 <b>Session</b>\n\n")
	b.WriteString(fmt.Sprintf("Mode: %s\n", state.Mode))
	b.WriteString(fmt.Sprintf("Day ticks: %s\n", onOff(state.Ticks)))
	b.WriteString(fmt.Sprintf("Revenue lag: %d day(s)\n", state.LagDays))
	b.WriteString(fmt.Sprintf("Solo: %s\n", state.Solo))
	b.WriteString(fmt.Sprintf("Renders: %d\n", state.Renders))
	if !state.UpdatedAt.IsZero() {
		b.WriteString(fmt.Sprintf("Updated: %s\n", state.UpdatedAt.Format("2006-01-02 15:04")))
	}
	return b.String()
}

// FormatHelp lists the bot commands.
func FormatHelp() string {
	return "🎧 <b>SalesEcho commands</b>\n\n" +
		"/play [both|traffic|revenue] - render and send the clip\n" +
		"/mode continuous|perday - glide or one note per day\n" +
		"/ticks on|off - day boundary clicks\n" +
		"/lag N - revenue lag in days\n" +
		"/status - current settings\n" +
		"/help - this message"
}

// FormatError formats a failed job for the chat.
func FormatError(job string, err error) string {
	return fmt.Sprintf("⚠️ <b>%s failed</b> | %s\n%s",
		html.EscapeString(job), time.Now().Format("2006-01-02 15:04"), html.EscapeString(err.Error()))
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
