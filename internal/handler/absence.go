package handler

import (
	"fmt"
	"strconv"
	"strings"

	"absence-tracker/internal/dialog"
	"absence-tracker/internal/models"
	"absence-tracker/pkg/calendar"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// openDialog handles /open <employee> <date>.
func (h *Handler) openDialog(chatID int64, args string) {
	fields := strings.Fields(args)
	if len(fields) != 2 {
		h.sendError(chatID, "Wrong format. Use: /open <employee> <date>\nExample: /open emp-1 2024-03-10")
		return
	}

	employee, ok := h.lookupEmployee(chatID, fields[0])
	if !ok {
		return
	}

	date, err := calendar.ParseDate(fields[1])
	if err != nil {
		h.sendError(chatID, err.Error())
		return
	}

	d := h.dialogFor(chatID)
	d.OpenDialog(employee, date, h.absenceService.Store())
	h.sendDialogCard(chatID, d)
}

// setField handles /set <field> <value>.
func (h *Handler) setField(chatID int64, args string) {
	d, ok := h.openDialogFor(chatID)
	if !ok {
		return
	}

	field, value, _ := strings.Cut(args, " ")
	h.applyField(chatID, d, strings.ToLower(field), strings.TrimSpace(value))
}

func (h *Handler) applyField(chatID int64, d *dialog.Controller, field, value string) {
	switch field {
	case "start", "end":
		date, err := calendar.ParseDate(value)
		if err != nil {
			h.sendError(chatID, err.Error())
			return
		}
		if field == "start" {
			d.SetStartDate(date.Format(calendar.DateLayout))
		} else {
			d.SetEndDate(date.Format(calendar.DateLayout))
		}
	case "type":
		t, ok := models.ParseAbsenceType(value)
		if !ok {
			h.sendError(chatID, "Unknown absence type. See /types.")
			return
		}
		d.SetType(t)
	case "reason":
		if value == "-" {
			value = ""
		}
		d.SetReason(value)
	default:
		h.sendError(chatID, "Use: /set start|end|type|reason <value>")
		return
	}

	h.sendDialogCard(chatID, d)
}

func (h *Handler) showForm(chatID int64) {
	d, ok := h.openDialogFor(chatID)
	if !ok {
		return
	}
	h.sendDialogCard(chatID, d)
}

func (h *Handler) withOpenDialog(chatID int64, fn func(int64, *dialog.Controller)) {
	d, ok := h.openDialogFor(chatID)
	if !ok {
		return
	}
	fn(chatID, d)
}

func (h *Handler) openDialogFor(chatID int64) (*dialog.Controller, bool) {
	d, exists := h.dialogs[chatID]
	if !exists || !d.IsOpen() {
		h.sendError(chatID, "No dialog is open. Use /open <employee> <date> first.")
		return nil, false
	}
	return d, true
}

func (h *Handler) saveAbsence(chatID int64, d *dialog.Controller) {
	created := !d.IsEditMode()

	result := d.SaveAbsence(h.absenceService.Store())
	if !result.Success {
		h.sendError(chatID, "Could not save the absence:\n• "+strings.Join(result.Errors, "\n• "))
		return
	}

	verb := "updated"
	if created {
		verb = "created"
	}

	if result.Absence == nil {
		h.sendSuccess(chatID, "Absence "+verb+".")
		return
	}

	a := *result.Absence
	h.sendSuccess(chatID, fmt.Sprintf("Absence %s!\n\n%s", verb, formatAbsenceLine(1, a)))

	if overlaps := h.absenceService.Overlaps(a); len(overlaps) > 0 {
		var sb strings.Builder
		sb.WriteString("This absence overlaps with:\n")
		for i, o := range overlaps {
			sb.WriteString(formatAbsenceLine(i+1, o))
			sb.WriteString("\n")
		}
		h.sendWarning(chatID, sb.String())
	}
}

func (h *Handler) deleteAbsence(chatID int64, d *dialog.Controller) {
	result := d.DeleteAbsence(h.absenceService.Store())
	if !result.Success {
		h.sendError(chatID, result.Error)
		return
	}
	h.sendSuccess(chatID, "Absence deleted.")
}

func (h *Handler) closeDialog(chatID int64, d *dialog.Controller) {
	d.CloseDialog()
	h.sendInfo(chatID, "Dialog closed, draft discarded.")
}

func (h *Handler) sendDialogCard(chatID int64, d *dialog.Controller) {
	msg := tgbotapi.NewMessage(chatID, renderDialogCard(d))
	msg.ReplyMarkup = dialogKeyboard(d)
	h.send(msg)
}

func renderDialogCard(d *dialog.Controller) string {
	form := d.Form()

	employee := "—"
	if e := d.SelectedEmployee(); e != nil {
		employee = fmt.Sprintf("%s (%s)", e.FullName(), e.PersonnelNumber)
	}

	orDash := func(s string) string {
		if s == "" {
			return "—"
		}
		return s
	}

	text := fmt.Sprintf(`📝 %s

👤 %s
📅 Start: %s
📅 End: %s
🏷 Type: %s
💬 Reason: %s`,
		d.Title(),
		employee,
		orDash(form.StartDate),
		orDash(form.EndDate),
		orDash(string(form.Type)),
		orDash(form.Reason),
	)

	if days := calendar.DaysInclusive(form.StartDate, form.EndDate); days > 0 {
		text += fmt.Sprintf("\n🔢 Days: %d", days)
	}
	return text + "\n\nSend any text to set the reason."
}

func dialogKeyboard(d *dialog.Controller) tgbotapi.InlineKeyboardMarkup {
	session := d.Session()

	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for i, t := range models.AbsenceTypes() {
		label := string(t)
		if t == d.Form().Type {
			label = "• " + label
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, callbackData("type", session, strconv.Itoa(i+1))))
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	actions := []tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardButtonData("✅ "+d.SaveButtonText(), callbackData("save", session)),
	}
	if d.IsEditMode() {
		actions = append(actions, tgbotapi.NewInlineKeyboardButtonData("🗑 Delete", callbackData("delete", session)))
	}
	actions = append(actions, tgbotapi.NewInlineKeyboardButtonData("✖️ Cancel", callbackData("close", session)))
	rows = append(rows, actions)

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
