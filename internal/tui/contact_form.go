package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/csheth/webmodels/internal/contact"
	"github.com/csheth/webmodels/internal/content"
)

type formField int

const (
	fieldName formField = iota
	fieldEmail
	fieldModel
	fieldMessage
	fieldCustomization
	fieldCount
)

var fieldLabels = map[string]string{
	"name":    "Nom",
	"email":   "Email",
	"model":   "Modèle de site",
	"message": "Message",
}

type contactForm struct {
	name          textinput.Model
	email         textinput.Model
	message       textarea.Model
	customization textarea.Model

	choices []content.Choice
	choice  int
	focus   formField
	state   formState
	err     string

	submitted *contact.Submission
}

// newContactForm preselects modelID when it is one of the choices.
func newContactForm(modelID string) contactForm {
	name := textinput.New()
	name.Placeholder = "Votre nom"
	name.CharLimit = 120
	name.Prompt = ""

	email := textinput.New()
	email.Placeholder = "votre@email.com"
	email.CharLimit = 254
	email.Prompt = ""

	message := textarea.New()
	message.Placeholder = "Votre message"
	message.ShowLineNumbers = false
	message.CharLimit = 4000
	message.SetHeight(4)

	custom := textarea.New()
	custom.Placeholder = "Décrivez les personnalisations que vous souhaitez"
	custom.ShowLineNumbers = false
	custom.CharLimit = 4000
	custom.SetHeight(3)

	f := contactForm{
		name:          name,
		email:         email,
		message:       message,
		customization: custom,
		choices:       content.ContactModels(),
		choice:        -1,
	}
	for i, c := range f.choices {
		if c.ID == modelID {
			f.choice = i
		}
	}
	f.setFocus(fieldName)
	return f
}

func (f *contactForm) resize(width int) {
	w := clampWidth(width, 20, 60)
	f.name.Width = w
	f.email.Width = w
	f.message.SetWidth(w)
	f.customization.SetWidth(w)
}

func (f *contactForm) setFocus(field formField) tea.Cmd {
	f.focus = field
	f.name.Blur()
	f.email.Blur()
	f.message.Blur()
	f.customization.Blur()
	switch field {
	case fieldName:
		return f.name.Focus()
	case fieldEmail:
		return f.email.Focus()
	case fieldMessage:
		return f.message.Focus()
	case fieldCustomization:
		return f.customization.Focus()
	}
	return nil
}

func (f *contactForm) move(step int) tea.Cmd {
	next := (int(f.focus) + step + int(fieldCount)) % int(fieldCount)
	return f.setFocus(formField(next))
}

func (f *contactForm) selectedModelID() string {
	if f.choice < 0 || f.choice >= len(f.choices) {
		return ""
	}
	return f.choices[f.choice].ID
}

func (f *contactForm) Form() contact.Form {
	return contact.Form{
		Name:          f.name.Value(),
		Email:         f.email.Value(),
		Model:         f.selectedModelID(),
		Message:       f.message.Value(),
		Customization: f.customization.Value(),
	}
}

func (f *contactForm) cycleChoice(step int) {
	n := len(f.choices)
	if n == 0 {
		return
	}
	if f.choice < 0 {
		if step > 0 {
			f.choice = 0
		} else {
			f.choice = n - 1
		}
		return
	}
	f.choice = (f.choice + step + n) % n
}

// Update routes a key to the focused field.
func (f *contactForm) Update(key tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	switch f.focus {
	case fieldName:
		if key.Type == tea.KeyEnter {
			return f.move(1)
		}
		f.name, cmd = f.name.Update(key)
	case fieldEmail:
		if key.Type == tea.KeyEnter {
			return f.move(1)
		}
		f.email, cmd = f.email.Update(key)
	case fieldModel:
		switch key.String() {
		case "left", "up", "h", "k":
			f.cycleChoice(-1)
		case "right", "down", "l", "j", " ":
			f.cycleChoice(1)
		case "enter":
			return f.move(1)
		}
	case fieldMessage:
		f.message, cmd = f.message.Update(key)
	case fieldCustomization:
		f.customization, cmd = f.customization.Update(key)
	}
	return cmd
}

// validate applies contact.Validate and focuses the first missing field.
func (f *contactForm) validate() bool {
	err := contact.Validate(contact.Normalize(f.Form()))
	if err == nil {
		f.err = ""
		return true
	}
	f.err = describeSubmitError(err)
	var verr *contact.ValidationError
	if errors.As(err, &verr) && len(verr.Missing) > 0 {
		switch verr.Missing[0] {
		case "name":
			f.setFocus(fieldName)
		case "email":
			f.setFocus(fieldEmail)
		case "model":
			f.setFocus(fieldModel)
		case "message":
			f.setFocus(fieldMessage)
		}
	}
	return false
}

func (f *contactForm) reset() tea.Cmd {
	f.name.Reset()
	f.email.Reset()
	f.message.Reset()
	f.customization.Reset()
	f.choice = -1
	f.err = ""
	f.state = formEditing
	f.submitted = nil
	return f.setFocus(fieldName)
}

func describeSubmitError(err error) string {
	var verr *contact.ValidationError
	if errors.As(err, &verr) {
		labels := make([]string, 0, len(verr.Missing))
		for _, field := range verr.Missing {
			if label, ok := fieldLabels[field]; ok {
				labels = append(labels, label)
			} else {
				labels = append(labels, field)
			}
		}
		return "Champs requis : " + strings.Join(labels, ", ")
	}
	return "Une erreur est survenue. Veuillez réessayer. (" + err.Error() + ")"
}

func (f *contactForm) label(field formField, text string) string {
	if f.focus == field && f.state == formEditing {
		return focusedLabelStyle.Render("▸ " + text)
	}
	return labelStyle.Render("  " + text)
}

func (f *contactForm) modelSelector() string {
	if f.choice < 0 {
		return helperStyle.Render("  ◀ Sélectionnez un modèle ▶")
	}
	name := f.choices[f.choice].Name
	if f.focus == fieldModel {
		return "  ◀ " + selectedChoice.Render(name) + " ▶"
	}
	return "  ◀ " + choiceStyle.Render(name) + " ▶"
}

func (f *contactForm) View(spin string) string {
	switch f.state {
	case formSubmitted:
		lines := []string{
			successStyle.Render("✅ Message Envoyé !"),
			"",
			"Merci de nous avoir contactés. Nous vous répondrons dans les plus brefs délais.",
		}
		if f.submitted != nil {
			lines = append(lines, helperStyle.Render("Référence : "+f.submitted.ID.String()))
		}
		lines = append(lines, "", ctaStyle.Render("Envoyer un autre message (n)"))
		return strings.Join(lines, "\n")
	}

	rows := []string{
		f.label(fieldName, "Nom"),
		"  " + f.name.View(),
		f.label(fieldEmail, "Email"),
		"  " + f.email.View(),
		f.label(fieldModel, "Modèle de site"),
		f.modelSelector(),
		f.label(fieldMessage, "Message"),
		indentBlock(f.message.View(), "  "),
		f.label(fieldCustomization, "Personnalisations souhaitées (optionnel)"),
		indentBlock(f.customization.View(), "  "),
		"",
	}
	if f.err != "" {
		rows = append(rows, errorStyle.Render(f.err))
	}
	if f.state == formSubmitting {
		rows = append(rows, ctaStyle.Render(spin+" Envoi en cours…"))
	} else {
		rows = append(rows, ctaStyle.Render("Envoyer le message (ctrl+s)"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func indentBlock(block, prefix string) string {
	lines := strings.Split(block, "\n")
	for i := range lines {
		lines[i] = prefix + lines[i]
	}
	return strings.Join(lines, "\n")
}
