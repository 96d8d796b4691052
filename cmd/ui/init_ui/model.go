package init_ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Field is one config value asked for in the form.
type Field struct {
	Key         string
	Label       string
	Placeholder string
	Value       string
}

type Params struct {
	Target string
	// Sources are candidate section registry files, relative to Target.
	Sources []string
	Source  string
	Fields  []Field
}

type Result struct {
	Target    string
	Source    string
	Values    map[string]string
	Cancelled bool
}

type step int

const (
	stepSelectSource step = iota
	stepFields
)

type Model struct {
	step step

	sourceList  list.Model
	fields      []Field
	inputs      []textinput.Model
	targetInput textinput.Model
	focusIdx    int
	done        bool

	result Result
	err    error
}

func Run(ctx context.Context, params Params) (*Result, error) {
	model, err := NewModel(params)
	if err != nil {
		return nil, err
	}

	program := tea.NewProgram(model, tea.WithContext(ctx))
	final, err := program.Run()
	if err != nil {
		return nil, err
	}

	m, ok := final.(*Model)
	if !ok {
		return nil, fmt.Errorf("unexpected model type %T", final)
	}

	return &m.result, m.err
}

func NewModel(params Params) (*Model, error) {
	if len(params.Fields) == 0 {
		return nil, fmt.Errorf("no fields to ask for")
	}

	m := &Model{
		fields: params.Fields,
		result: Result{
			Target: params.Target,
			Source: params.Source,
		},
	}

	m.targetInput = textinput.New()
	m.targetInput.Placeholder = "path/to/template"
	m.targetInput.Prompt = ""
	m.targetInput.SetValue(params.Target)
	applyTextInputStyles(&m.targetInput)

	m.inputs = make([]textinput.Model, len(m.fields))
	for i, f := range m.fields {
		input := textinput.New()
		input.Prompt = ""
		input.Placeholder = f.Placeholder
		input.SetValue(f.Value)
		applyTextInputStyles(&input)
		m.inputs[i] = input
	}

	if len(params.Sources) > 1 {
		m.step = stepSelectSource
		m.sourceList = buildSourceList(params.Sources)
		selectSourceInList(&m.sourceList, params.Source)
	} else {
		if len(params.Sources) == 1 {
			m.result.Source = params.Sources[0]
		}
		m.startFields()
	}

	return m, nil
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if m.step == stepSelectSource {
			m.sourceList.SetSize(msg.Width, msg.Height-6)
		}
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.done = true
			m.result.Cancelled = true
			return m, tea.Quit
		}
	}

	switch m.step {
	case stepSelectSource:
		return m.updateSelectSource(msg)
	case stepFields:
		return m.updateFields(msg)
	default:
		return m, nil
	}
}

func (m *Model) View() string {
	if m.done {
		return ""
	}
	switch m.step {
	case stepSelectSource:
		return m.sourceList.View()
	case stepFields:
		return m.viewFields()
	default:
		return ""
	}
}

func (m *Model) updateSelectSource(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.sourceList, cmd = m.sourceList.Update(msg)

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		item, ok := m.sourceList.SelectedItem().(sourceItem)
		if !ok {
			return m, nil
		}
		m.result.Source = item.path
		m.startFields()
		return m, nil
	}

	return m, cmd
}

func (m *Model) updateFields(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "down":
			m.focusNext()
			return m, nil
		case "shift+tab", "up":
			m.focusPrev()
			return m, nil
		case "enter":
			if m.focusIdx <= len(m.inputs) {
				m.focusNext()
				return m, nil
			}
			m.captureResult()
			m.done = true
			return m, tea.Quit
		}
	}

	if input := m.focusedInput(); input != nil {
		var cmd tea.Cmd
		*input, cmd = input.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *Model) viewFields() string {
	styles := initStyles()
	var b strings.Builder
	b.WriteString(styles.title.Render("sitekit setup:") + "\n\n")

	targetBlock := styles.section.Render("Project directory:") + "\n" + m.targetInput.View()
	b.WriteString(styles.block(m.focusIdx == 0).Render(targetBlock))
	b.WriteString("\n\n")

	if m.result.Source != "" {
		b.WriteString(styles.blockUnfocused.Render(styles.label.Render("Section registry:") + "\n" + m.result.Source))
		b.WriteString("\n\n")
	}

	for i := range m.inputs {
		block := styles.label.Render(m.fields[i].Label) + "\n" + m.inputs[i].View()
		b.WriteString(styles.block(m.focusIdx == i+1).Render(block))
		b.WriteString("\n\n")
	}

	submitLine := "Write sitekit.toml"
	if m.focusIdx == len(m.inputs)+1 {
		submitLine = styles.submitFocused.Render(submitLine)
	} else {
		submitLine = styles.submit.Render(submitLine)
	}
	b.WriteString(submitLine)
	b.WriteString("\n")

	return b.String()
}

func (m *Model) startFields() {
	m.step = stepFields
	m.focusIdx = 0
	m.syncFocus()
}

func (m *Model) captureResult() {
	m.result.Target = strings.TrimSpace(m.targetInput.Value())
	if m.result.Target == "" {
		m.result.Target = "."
	}

	values := make(map[string]string, len(m.fields))
	for i, f := range m.fields {
		v := strings.TrimSpace(m.inputs[i].Value())
		if v == "" {
			v = f.Value
		}
		values[f.Key] = v
	}
	m.result.Values = values
}

func (m *Model) focusedInput() *textinput.Model {
	if m.focusIdx == 0 {
		return &m.targetInput
	}
	if m.focusIdx >= 1 && m.focusIdx <= len(m.inputs) {
		return &m.inputs[m.focusIdx-1]
	}
	return nil
}

func (m *Model) focusNext() {
	m.focusIdx++
	if m.focusIdx > len(m.inputs)+1 {
		m.focusIdx = 0
	}
	m.syncFocus()
}

func (m *Model) focusPrev() {
	m.focusIdx--
	if m.focusIdx < 0 {
		m.focusIdx = len(m.inputs) + 1
	}
	m.syncFocus()
}

func (m *Model) syncFocus() {
	if m.focusIdx == 0 {
		m.targetInput.Focus()
	} else {
		m.targetInput.Blur()
	}

	for i := range m.inputs {
		if m.focusIdx == i+1 {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
}
