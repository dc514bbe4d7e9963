package handler

import (
	"fmt"
	"strings"
	"time"

	"absence-tracker/internal/models"
	"absence-tracker/internal/store"
	"absence-tracker/pkg/calendar"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

var typeCodes = map[models.AbsenceType]string{
	models.AbsenceTypeSickLeave:          "S",
	models.AbsenceTypeVacation:           "V",
	models.AbsenceTypePersonalLeave:      "P",
	models.AbsenceTypeMedicalAppointment: "M",
	models.AbsenceTypeEmergencyLeave:     "E",
	models.AbsenceTypeTraining:           "T",
	models.AbsenceTypeOther:              "O",
}

// showCalendar handles /calendar <employee> [YYYY-MM].
func (h *Handler) showCalendar(chatID int64, args string) {
	employee, ok := h.lookupEmployee(chatID, args)
	if !ok {
		return
	}

	today := calendar.Today()
	year, month := today.Year(), today.Month()
	if fields := strings.Fields(args); len(fields) > 1 {
		t, err := time.Parse("2006-01", fields[1])
		if err != nil {
			h.sendError(chatID, "Month must look like 2024-03.")
			return
		}
		year, month = t.Year(), t.Month()
	}

	grid := renderMonth(year, month, h.absenceService.Absences(employee.ID))
	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("🗓 %s · %s %d\n```\n%s```", employee.FullName(), month, year, grid))
	msg.ParseMode = tgbotapi.ModeMarkdown
	h.send(msg)
}

// renderMonth draws a Monday-first grid. Absence days carry the type code
// after the day number; a dot marks weekends without absence.
func renderMonth(year int, month time.Month, absences []models.Absence) string {
	var sb strings.Builder
	sb.WriteString("Mo  Tu  We  Th  Fr  Sa  Su\n")

	dates := calendar.MonthDates(year, month)
	offset := (int(dates[0].Date.Weekday()) + 6) % 7
	sb.WriteString(strings.Repeat("    ", offset))

	col := offset
	for _, d := range dates {
		cell := fmt.Sprintf("%2d", d.Date.Day())
		if a, found := store.FindContaining(absences, d.DateString); found {
			cell += typeCodes[a.Type]
		} else if calendar.IsWeekend(d.Date) {
			cell += "."
		} else {
			cell += " "
		}
		sb.WriteString(cell)

		col++
		if col == 7 {
			sb.WriteString("\n")
			col = 0
		} else {
			sb.WriteString(" ")
		}
	}
	if col != 0 {
		sb.WriteString("\n")
	}

	sb.WriteString("\nS sick · V vacation · P personal · M medical\nE emergency · T training · O other\n")
	return sb.String()
}
