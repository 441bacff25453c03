package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wombatlabs/worldbridge/bridge"
	"github.com/wombatlabs/worldbridge/input"
	"github.com/wombatlabs/worldbridge/world"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	entityStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type inspectorModel struct {
	err       error
	sceneFile string
	w         *world.World
	session   *bridge.Session
	snap      *input.Snapshot
	queue     *input.CommandQueue
	prompt    textinput.Model
	output    []string
}

func newInspectorModel(sceneFile string) *inspectorModel {
	ti := textinput.New()
	ti.Placeholder = "command (try: help)"
	ti.Prompt = "> "
	ti.Width = 60
	ti.Focus()
	return &inspectorModel{
		sceneFile: sceneFile,
		prompt:    ti,
	}
}

type sceneLoadedMsg struct {
	err     error
	w       *world.World
	session *bridge.Session
	snap    *input.Snapshot
	queue   *input.CommandQueue
}

func (m *inspectorModel) Init() tea.Cmd {
	return m.loadScene
}

func (m *inspectorModel) loadScene() tea.Msg {
	w, err := loadWorld(m.sceneFile)
	if err != nil {
		return sceneLoadedMsg{err: err}
	}
	snap := input.NewSnapshot()
	queue := input.NewCommandQueue(0)
	session := bridge.Open(w, queue)
	session.BeginFrame(snap)
	return sceneLoadedMsg{w: w, session: session, snap: snap, queue: queue}
}

func (m *inspectorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			if m.session != nil {
				m.session.Close()
			}
			if m.queue != nil {
				m.queue.Close()
			}
			return m, tea.Quit

		case "enter":
			line := strings.TrimSpace(m.prompt.Value())
			m.prompt.SetValue("")
			if line == "" {
				return m, nil
			}
			if line == "quit" || line == "q" {
				if m.session != nil {
					m.session.Close()
				}
				if m.queue != nil {
					m.queue.Close()
				}
				return m, tea.Quit
			}
			m.runCommand(line)
			return m, nil
		}

	case sceneLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.w = msg.w
		m.session = msg.session
		m.snap = msg.snap
		m.queue = msg.queue
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func (m *inspectorModel) runCommand(line string) {
	m.output = append(m.output, "> "+line)
	fields := strings.Fields(line)

	emit := func(s string) { m.output = append(m.output, s) }
	emitErr := func(err error) {
		emit(errorStyle.Render(fmt.Sprintf("error: %v (status %d)", err, bridge.StatusOf(err))))
	}

	switch fields[0] {
	case "help":
		emit("labels                          list entity labels")
		emit("resolve <label>                 resolve a label to a handle")
		emit("transform <label>               show world transform")
		emit("move <label> <x> <y> <z>        set local position")
		emit("get <label> <prop>              read a property")
		emit("set <label> <prop> <type> <v>   write a property (int|long|float|double|bool|string)")
		emit("camera <label>                  show a camera")
		emit("press <key> / release <key>     toggle a key in the snapshot")
		emit("keys                            list pressed keys")
		emit("frame                           begin a new frame and drain cursor commands")
		emit("quit                            exit")

	case "labels":
		buf, err := m.session.EntityLabels()
		if err != nil {
			emitErr(err)
			return
		}
		labels, _ := buf.Elems()
		for _, label := range labels {
			emit("  " + entityStyle.Render(label))
		}
		buf.Release()

	case "resolve":
		if len(fields) != 2 {
			emit("usage: resolve <label>")
			return
		}
		h, err := m.session.ResolveEntity(fields[1])
		if err != nil {
			emitErr(err)
			return
		}
		emit(resultStyle.Render(fmt.Sprintf("handle %d", h)))

	case "transform":
		if len(fields) != 2 {
			emit("usage: transform <label>")
			return
		}
		h, err := m.session.ResolveEntity(fields[1])
		if err != nil {
			emitErr(err)
			return
		}
		t, err := m.session.Transform(h)
		if err != nil {
			emitErr(err)
			return
		}
		emit(resultStyle.Render(fmt.Sprintf(
			"pos=(%.3f, %.3f, %.3f) rot=(%.3f, %.3f, %.3f, %.3f) scale=(%.3f, %.3f, %.3f)",
			t.Position[0], t.Position[1], t.Position[2],
			t.Rotation[0], t.Rotation[1], t.Rotation[2], t.Rotation[3],
			t.Scale[0], t.Scale[1], t.Scale[2])))

	case "move":
		if len(fields) != 5 {
			emit("usage: move <label> <x> <y> <z>")
			return
		}
		h, err := m.session.ResolveEntity(fields[1])
		if err != nil {
			emitErr(err)
			return
		}
		t, err := m.session.LocalTransform(h)
		if err != nil {
			emitErr(err)
			return
		}
		for i := 0; i < 3; i++ {
			v, perr := strconv.ParseFloat(fields[2+i], 64)
			if perr != nil {
				emit("usage: move <label> <x> <y> <z>")
				return
			}
			t.Position[i] = v
		}
		if err := m.session.SetTransform(h, t); err != nil {
			emitErr(err)
			return
		}
		emit(resultStyle.Render("ok"))

	case "get":
		if len(fields) != 3 {
			emit("usage: get <label> <prop>")
			return
		}
		m.getProperty(fields[1], fields[2], emit, emitErr)

	case "set":
		if len(fields) < 5 {
			emit("usage: set <label> <prop> <type> <value>")
			return
		}
		m.setProperty(fields[1], fields[2], fields[3], strings.Join(fields[4:], " "), emit, emitErr)

	case "camera":
		if len(fields) != 2 {
			emit("usage: camera <label>")
			return
		}
		cam, err := m.session.CameraByLabel(fields[1])
		if err != nil {
			emitErr(err)
			return
		}
		label, _ := m.w.Label(cam.Attached)
		emit(resultStyle.Render(fmt.Sprintf(
			"%s on %s  fovy=%.1f aspect=%.3f near=%.3f far=%.1f",
			cam.Label, label, cam.FovY, cam.Aspect, cam.ZNear, cam.ZFar)))

	case "press", "release":
		if len(fields) != 2 {
			emit("usage: " + fields[0] + " <key>")
			return
		}
		key, ok := input.KeyByName(fields[1])
		if !ok {
			emit(errorStyle.Render("unknown key " + fields[1]))
			return
		}
		if fields[0] == "press" {
			m.snap.Press(key)
		} else {
			m.snap.Release(key)
		}
		emit(resultStyle.Render("ok"))

	case "keys":
		names := input.KeyNames()
		byCode := make(map[int32]string, len(names))
		for name, code := range names {
			byCode[code] = name
		}
		pressed := m.snap.PressedKeys()
		if len(pressed) == 0 {
			emit("none")
			return
		}
		var out []string
		for _, k := range pressed {
			out = append(out, byCode[int32(k)])
		}
		sort.Strings(out)
		emit(valueStyle.Render(strings.Join(out, " ")))

	case "frame":
		m.session.BeginFrame(m.snap)
		applied := m.queue.Drain(m.snap)
		emit(resultStyle.Render(fmt.Sprintf("frame begun, %d cursor commands applied", applied)))

	default:
		emit(errorStyle.Render("unknown command, try: help"))
	}
}

func (m *inspectorModel) getProperty(label, prop string, emit func(string), emitErr func(error)) {
	h, err := m.session.ResolveEntity(label)
	if err != nil {
		emitErr(err)
		return
	}
	// Probe the underlying value so the inspector does not need the
	// caller to know the type.
	v, ok := m.w.Property(h, prop)
	if !ok {
		emitErr(fmt.Errorf("no property %q", prop))
		return
	}
	switch v.Type() {
	case world.TypeString:
		s, _ := v.AsString()
		emit(resultStyle.Render(strconv.Quote(s)) + helpStyle.Render(" string"))
	case world.TypeInt:
		n, _ := v.AsInt()
		emit(resultStyle.Render(strconv.FormatInt(int64(n), 10)) + helpStyle.Render(" int"))
	case world.TypeLong:
		n, _ := v.AsLong()
		emit(resultStyle.Render(strconv.FormatInt(n, 10)) + helpStyle.Render(" long"))
	case world.TypeFloat:
		f, _ := v.AsFloat()
		emit(resultStyle.Render(strconv.FormatFloat(float64(f), 'g', -1, 32)) + helpStyle.Render(" float"))
	case world.TypeDouble:
		f, _ := v.AsDouble()
		emit(resultStyle.Render(strconv.FormatFloat(f, 'g', -1, 64)) + helpStyle.Render(" double"))
	case world.TypeBool:
		b, _ := v.AsBool()
		emit(resultStyle.Render(strconv.FormatBool(b)) + helpStyle.Render(" bool"))
	case world.TypeVec3:
		vec, _ := v.AsVec3()
		emit(resultStyle.Render(fmt.Sprintf("(%g, %g, %g)", vec[0], vec[1], vec[2])) + helpStyle.Render(" vec3"))
	}
}

func (m *inspectorModel) setProperty(label, prop, typ, raw string, emit func(string), emitErr func(error)) {
	h, err := m.session.ResolveEntity(label)
	if err != nil {
		emitErr(err)
		return
	}
	switch typ {
	case "string":
		err = m.session.SetStringProperty(h, prop, raw)
	case "int":
		v, perr := strconv.ParseInt(raw, 10, 32)
		if perr != nil {
			emit("bad int " + raw)
			return
		}
		err = m.session.SetIntProperty(h, prop, int32(v))
	case "long":
		v, perr := strconv.ParseInt(raw, 10, 64)
		if perr != nil {
			emit("bad long " + raw)
			return
		}
		err = m.session.SetLongProperty(h, prop, v)
	case "float":
		v, perr := strconv.ParseFloat(raw, 32)
		if perr != nil {
			emit("bad float " + raw)
			return
		}
		err = m.session.SetFloatProperty(h, prop, float32(v))
	case "double":
		v, perr := strconv.ParseFloat(raw, 64)
		if perr != nil {
			emit("bad double " + raw)
			return
		}
		err = m.session.SetDoubleProperty(h, prop, v)
	case "bool":
		err = m.session.SetBoolProperty(h, prop, raw == "true" || raw == "1")
	default:
		emit("unknown type " + typ)
		return
	}
	if err != nil {
		emitErr(err)
		return
	}
	emit(resultStyle.Render("ok"))
}

const maxOutputLines = 20

func (m *inspectorModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress ctrl+c to quit.", m.err))
	}
	if m.w == nil {
		return "Loading scene..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("World Inspector"))
	b.WriteString(" ")
	b.WriteString(m.sceneFile)
	b.WriteString(fmt.Sprintf("  (%d entities)\n\n", m.w.Len()))

	lines := m.output
	if len(lines) > maxOutputLines {
		lines = lines[len(lines)-maxOutputLines:]
	}
	for _, line := range lines {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.prompt.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter run • ctrl+c quit"))
	return b.String()
}

func runInteractive(sceneFile string) error {
	p := tea.NewProgram(newInspectorModel(sceneFile), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
