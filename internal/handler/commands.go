package handler

import (
	"fmt"
	"strconv"
	"strings"

	"absence-tracker/internal/models"
	"absence-tracker/pkg/calendar"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const maxSampleEmployees = 500

func (h *Handler) handleCommand(message *tgbotapi.Message) {
	chatID := message.Chat.ID
	args := strings.TrimSpace(message.CommandArguments())

	switch message.Command() {
	case "start", "help":
		h.sendHelpMessage(chatID)
	case "employees":
		h.listEmployees(chatID)
	case "absences":
		h.listAbsences(chatID, args)
	case "calendar":
		h.showCalendar(chatID, args)
	case "types":
		h.listTypes(chatID)
	case "generate":
		h.generateSampleData(chatID, args)

	// Absence dialog
	case "open":
		h.openDialog(chatID, args)
	case "set":
		h.setField(chatID, args)
	case "form":
		h.showForm(chatID)
	case "save":
		h.withOpenDialog(chatID, h.saveAbsence)
	case "delete":
		h.withOpenDialog(chatID, h.deleteAbsence)
	case "close":
		h.withOpenDialog(chatID, h.closeDialog)

	default:
		h.sendError(chatID, "Unknown command. Send /help for the list of commands.")
	}
}

func (h *Handler) sendHelpMessage(chatID int64) {
	text := `📋 Available commands:

👥 Employees:
/employees - List employees
/absences <employee> - Absences of an employee
/calendar <employee> [YYYY-MM] - Month overview
/types - Absence types
/generate [N] - Regenerate sample data

📝 Absence dialog:
/open <employee> <date> - Create or edit the absence on a date
    Example: /open emp-1 2024-03-10
/set start|end <date> - Change a date
/set type <name or number> - Change the type
/set reason <text> - Change the reason ("-" clears it)
/form - Show the current draft
/save - Create or update
/delete - Delete the absence being edited
/close - Discard the draft

<employee> is an ID (emp-1) or a personnel number (P0001).`

	h.sendText(chatID, text)
}

func (h *Handler) listEmployees(chatID int64) {
	employees := h.absenceService.Employees()
	if len(employees) == 0 {
		h.sendInfo(chatID, "No employees yet. Use /generate to create sample data.")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("👥 Employees (%d):\n\n", len(employees)))
	for _, e := range employees {
		sb.WriteString(fmt.Sprintf("%s · %s · %s (%d absences)\n",
			e.PersonnelNumber, e.ID, e.FullName(), len(h.absenceService.Absences(e.ID))))
	}
	h.sendText(chatID, sb.String())
}

func (h *Handler) listAbsences(chatID int64, args string) {
	employee, ok := h.lookupEmployee(chatID, args)
	if !ok {
		return
	}

	absences := h.absenceService.Absences(employee.ID)
	if len(absences) == 0 {
		h.sendInfo(chatID, fmt.Sprintf("%s has no absences.", employee.FullName()))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🗓 Absences of %s (%s):\n\n", employee.FullName(), employee.PersonnelNumber))
	for i, a := range absences {
		sb.WriteString(formatAbsenceLine(i+1, a))
		sb.WriteString("\n")
	}
	h.sendText(chatID, sb.String())
}

func formatAbsenceLine(n int, a models.Absence) string {
	line := fmt.Sprintf("%d. %s → %s · %s (%d d)", n, a.StartDate, a.EndDate, a.Type,
		calendar.DaysInclusive(a.StartDate, a.EndDate))
	if a.Reason != "" {
		line += " · " + a.Reason
	}
	return line
}

func (h *Handler) listTypes(chatID int64) {
	var sb strings.Builder
	sb.WriteString("🏷 Absence types:\n\n")
	for i, t := range models.AbsenceTypes() {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, t))
	}
	h.sendText(chatID, sb.String())
}

func (h *Handler) generateSampleData(chatID int64, args string) {
	n := h.config.SampleEmployees
	if args != "" {
		parsed, err := strconv.Atoi(args)
		if err != nil || parsed < 1 || parsed > maxSampleEmployees {
			h.sendError(chatID, fmt.Sprintf("N must be a number between 1 and %d.", maxSampleEmployees))
			return
		}
		n = parsed
	}

	// Open drafts refer to data that is about to disappear.
	for _, d := range h.dialogs {
		d.CloseDialog()
	}

	if err := h.absenceService.GenerateSampleData(n); err != nil {
		h.absenceService.Logger().WithError(err).Error("Failed to generate sample data")
		h.sendError(chatID, "Failed to generate sample data.")
		return
	}
	h.sendSuccess(chatID, fmt.Sprintf("Generated %d employees with random absences.", n))
}

// lookupEmployee resolves the first argument, replying on failure.
func (h *Handler) lookupEmployee(chatID int64, args string) (models.Employee, bool) {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		h.sendError(chatID, "Specify an employee ID or personnel number.")
		return models.Employee{}, false
	}
	employee, ok := h.absenceService.Employee(fields[0])
	if !ok {
		h.sendError(chatID, fmt.Sprintf("Employee %q not found. See /employees.", fields[0]))
		return models.Employee{}, false
	}
	return employee, true
}
