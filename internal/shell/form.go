package shell

import (
	"errors"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/G-Villarinho/previsao-tempo-arvore-decisao/pkg/pipeline"
)

// RunForm shows the prediction form until the user quits.
func RunForm(a FormActions, in io.Reader, out io.Writer) error {
	prog := tea.NewProgram(newForm(a), tea.WithAltScreen(), tea.WithInput(in), tea.WithOutput(out))
	_, err := prog.Run()
	return err
}

type formStyles struct {
	title   lipgloss.Style
	label   lipgloss.Style
	focused lipgloss.Style
	result  lipgloss.Style
	warn    lipgloss.Style
	status  lipgloss.Style
	help    lipgloss.Style
	helpKey lipgloss.Style
	box     lipgloss.Style
}

func newFormStyles() formStyles {
	white := lipgloss.Color("#FFFFFF")
	blue := lipgloss.Color("#4FC3F7")
	amber := lipgloss.Color("#FFB300")
	gray500 := lipgloss.Color("#9E9E9E")
	gray700 := lipgloss.Color("#616161")

	return formStyles{
		title:   lipgloss.NewStyle().Bold(true).Foreground(white),
		label:   lipgloss.NewStyle().Foreground(gray500).Width(28),
		focused: lipgloss.NewStyle().Foreground(white).Bold(true).Width(28),
		result:  lipgloss.NewStyle().Foreground(blue).Bold(true).MarginTop(1),
		warn:    lipgloss.NewStyle().Foreground(amber).MarginTop(1),
		status:  lipgloss.NewStyle().Foreground(gray500),
		help:    lipgloss.NewStyle().Foreground(gray700).MarginTop(1),
		helpKey: lipgloss.NewStyle().Foreground(gray500).Bold(true),
		box:     lipgloss.NewStyle().Padding(1, 2),
	}
}

// form is the bubbletea model behind RunForm.
type form struct {
	actions FormActions
	schema  pipeline.Schema
	inputs  []textinput.Model
	focus   int

	result string // last prediction outcome
	warn   string // last validation message
	status string // last saved image or error

	styles formStyles
}

func newForm(a FormActions) form {
	schema := a.Schema()
	f := form{
		actions: a,
		schema:  schema,
		inputs:  make([]textinput.Model, schema.Width()),
		styles:  newFormStyles(),
	}
	for i := range f.inputs {
		in := textinput.New()
		in.Placeholder = "0.0"
		in.CharLimit = 16
		in.Width = 16
		f.inputs[i] = in
	}
	if len(f.inputs) > 0 {
		f.inputs[0].Focus()
	}
	return f
}

func (f form) Init() tea.Cmd {
	return textinput.Blink
}

func (f form) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			return f, tea.Quit
		case "enter":
			f.predict()
			return f, nil
		case "ctrl+l":
			return f.reset(), textinput.Blink
		case "ctrl+t":
			f.save(f.actions.SaveTreePNG)
			return f, nil
		case "ctrl+k":
			f.save(f.actions.SaveMatrixPNG)
			return f, nil
		case "tab", "down":
			return f.moveFocus(1), textinput.Blink
		case "shift+tab", "up":
			return f.moveFocus(-1), textinput.Blink
		}
	}

	if len(f.inputs) == 0 {
		return f, nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

func (f form) moveFocus(delta int) form {
	n := len(f.inputs)
	if n == 0 {
		return f
	}
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + n) % n
	f.inputs[f.focus].Focus()
	return f
}

// reset clears every input and the previous result.
func (f form) reset() form {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
		f.inputs[i].Blur()
	}
	f.focus = 0
	if len(f.inputs) > 0 {
		f.inputs[0].Focus()
	}
	f.result, f.warn, f.status = "", "", ""
	return f
}

func (f *form) values() map[string]string {
	out := make(map[string]string, len(f.inputs))
	for i, name := range f.schema.FeatureNames {
		out[name] = f.inputs[i].Value()
	}
	return out
}

func (f *form) predict() {
	f.result, f.warn = "", ""
	sample, err := pipeline.ParseSample(f.schema, f.values())
	if err == nil {
		label, perr := f.actions.Predict(sample)
		if perr == nil {
			f.result = "Prediction: " + Outcome(label)
			return
		}
		err = perr
	}
	if errors.Is(err, pipeline.ErrInputValidation) {
		f.warn = InvalidInput
		return
	}
	f.warn = err.Error()
}

func (f *form) save(fn func() (string, error)) {
	path, err := fn()
	if err != nil {
		f.status = "error: " + err.Error()
		return
	}
	f.status = "saved " + path
}

func (f form) View() string {
	s := f.styles
	var b strings.Builder
	b.WriteString(s.title.Render("Rainfall Prediction"))
	b.WriteString("\n\n")
	for i, name := range f.schema.FeatureNames {
		label := s.label
		if i == f.focus {
			label = s.focused
		}
		b.WriteString(label.Render(fieldLabel(name)))
		b.WriteString(f.inputs[i].View())
		b.WriteString("\n")
	}
	if f.result != "" {
		b.WriteString(s.result.Render(f.result))
		b.WriteString("\n")
	}
	if f.warn != "" {
		b.WriteString(s.warn.Render(f.warn))
		b.WriteString("\n")
	}
	if f.status != "" {
		b.WriteString(s.status.Render(f.status))
		b.WriteString("\n")
	}

	keys := []struct{ key, desc string }{
		{"enter", "predict"},
		{"tab", "next"},
		{"ctrl+l", "clear"},
		{"ctrl+t", "tree png"},
		{"ctrl+k", "matrix png"},
		{"esc", "quit"},
	}
	help := make([]string, len(keys))
	for i, k := range keys {
		help[i] = s.helpKey.Render(k.key) + " " + k.desc
	}
	b.WriteString(s.help.Render(strings.Join(help, "  ")))
	return s.box.Render(b.String())
}
