package views

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"rhystmorgan/veDesk/internal/animation"
	"rhystmorgan/veDesk/internal/models"
	"rhystmorgan/veDesk/internal/state"
)

const (
	navWidth    = 20
	detailSlide = 8
)

var (
	errNothingSelected   = errors.New("nothing selected")
	errAttendeesNeedMeet = errors.New("attendees are managed from the meetings view")
)

// AppModel is the root Bubble Tea model. Records, selection and dialog state
// all live in the session; the model only keeps what is needed to draw them.
type AppModel struct {
	session  *state.Session
	dispatch func(state.Intent) tea.Cmd
	logger   *zap.Logger
	theme    Theme
	anim     animation.Config
	now      func() time.Time

	width  int
	height int
	keys   keyMap
	help   help.Model

	cursor    [2]int
	search    textinput.Model
	searching bool
	lastView  state.View

	detail    *animation.Panel
	nav       *animation.Spring
	hover     *animation.Spring
	animating bool

	shown        state.Selection
	shownContact *models.Contact
	shownMeeting *models.Meeting

	contactForm *ContactFormModel
	meetingForm *MeetingFormModel
	attendees   *AttendeeManagerModel
	confirm     *ConfirmModel
	markdown    *markdownCache

	err error
}

type Option func(*AppModel)

func WithLogger(logger *zap.Logger) Option {
	return func(m *AppModel) {
		if logger != nil {
			m.logger = logger
		}
	}
}

func WithAnimation(cfg animation.Config) Option {
	return func(m *AppModel) { m.anim = cfg }
}

func WithTheme(theme Theme) Option {
	return func(m *AppModel) { m.theme = theme }
}

// WithClock replaces time.Now for relative times and form defaults.
func WithClock(now func() time.Time) Option {
	return func(m *AppModel) {
		if now != nil {
			m.now = now
		}
	}
}

func NewAppModel(session *state.Session, opts ...Option) *AppModel {
	m := &AppModel{
		session:  session,
		logger:   zap.NewNop(),
		theme:    DefaultTheme(),
		anim:     animation.DefaultConfig(),
		now:      time.Now,
		keys:     defaultKeyMap(),
		help:     help.New(),
		markdown: newMarkdownCache(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = m.logger.Named("tui")
	m.dispatch = newDispatcher(session, m.logger)

	m.search = textinput.New()
	m.search.Prompt = "/ "
	m.search.Placeholder = "search"

	view := session.ActiveView()
	m.lastView = view
	m.detail = animation.NewPanel(m.anim.FPS, m.anim.Detail, detailSlide)
	nav := animation.NewSpring(m.anim.FPS, m.anim.Nav, float64(view))
	m.nav = &nav
	hover := animation.NewSpring(m.anim.FPS, animation.HoverSpring, 0)
	m.hover = &hover

	dispatch := m.dispatch
	m.contactForm = NewContactFormModel()
	m.contactForm.SetAccent(m.theme.AccentContacts)
	m.contactForm.SetCallbacks(
		func(draft models.ContactDraft) tea.Cmd { return dispatch(state.SaveContact{Draft: draft}) },
		func() tea.Cmd { return dispatch(state.CancelContactForm{}) },
	)

	m.meetingForm = NewMeetingFormModel()
	m.meetingForm.SetAccent(m.theme.AccentMeetings)
	m.meetingForm.SetClock(m.now)
	m.meetingForm.SetCallbacks(
		func(draft models.MeetingDraft) tea.Cmd { return dispatch(state.SaveMeeting{Draft: draft}) },
		func() tea.Cmd { return dispatch(state.CancelMeetingForm{}) },
	)

	m.attendees = NewAttendeeManagerModel()
	m.attendees.SetAccent(m.theme.AccentMeetings)
	m.attendees.SetCallbacks(
		func(meetingID string, ids []string) tea.Cmd {
			return dispatch(state.SaveAttendees{MeetingID: meetingID, ContactIDs: ids})
		},
		func() tea.Cmd { return dispatch(state.CancelAttendees{}) },
	)

	m.confirm = NewConfirmModel()
	m.confirm.SetCallbacks(
		func() tea.Cmd { return dispatch(state.ConfirmDelete{}) },
		func() tea.Cmd { return dispatch(state.CancelDelete{}) },
	)

	m.syncSelection()
	return m
}

// newDispatcher sends intents to the session. Ignored intents are logged and
// otherwise dropped.
func newDispatcher(session *state.Session, logger *zap.Logger) func(state.Intent) tea.Cmd {
	return func(in state.Intent) tea.Cmd {
		if res := session.Dispatch(in); res.Ignored {
			logger.Debug("intent ignored", zap.String("intent", state.IntentName(in)))
		}
		return nil
	}
}

func (m AppModel) Init() tea.Cmd {
	if m.detail.Settled() && m.nav.Settled() {
		return nil
	}
	return animation.Tick(m.anim.FPS)
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case animation.FrameMsg:
		return m, m.stepAnimation()

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}
		if m.idle() && key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}

		m.err = nil
		cmd := m.handleKey(msg)
		return m, tea.Batch(cmd, m.sync())
	}

	return m, m.forward(msg)
}

// idle reports whether keys go to the lists rather than a dialog or the
// search box.
func (m *AppModel) idle() bool {
	return m.session.Pending() == nil &&
		m.session.Modals().Active() == state.ModalNone &&
		!m.searching
}

func (m *AppModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case m.session.Pending() != nil:
		return m.confirm.Update(msg)
	case m.session.Modals().Active() != state.ModalNone:
		return m.forward(msg)
	case m.searching:
		return m.updateSearch(msg)
	}
	return m.updateList(msg)
}

// forward passes a message to whichever dialog is open.
func (m *AppModel) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.session.Modals().Active() {
	case state.ModalContactForm:
		_, cmd = m.contactForm.Update(msg)
	case state.ModalMeetingForm:
		_, cmd = m.meetingForm.Update(msg)
	case state.ModalAttendees:
		_, cmd = m.attendees.Update(msg)
	default:
		if m.searching {
			m.search, cmd = m.search.Update(msg)
		}
	}
	return cmd
}

func (m *AppModel) updateList(msg tea.KeyMsg) tea.Cmd {
	view := m.session.ActiveView()

	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)

	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)

	case key.Matches(msg, m.keys.Select):
		id := m.cursorID()
		if id == "" {
			return nil
		}
		if view == state.ViewContacts {
			return m.dispatch(state.SelectContact{ID: id})
		}
		return m.dispatch(state.SelectMeeting{ID: id})

	case key.Matches(msg, m.keys.SwitchView):
		next := state.ViewContacts
		if view == state.ViewContacts {
			next = state.ViewMeetings
		}
		return m.dispatch(state.SwitchView{View: next})

	case key.Matches(msg, m.keys.Meetings):
		if view != state.ViewMeetings {
			return m.dispatch(state.SwitchView{View: state.ViewMeetings})
		}

	case key.Matches(msg, m.keys.Contacts):
		if view != state.ViewContacts {
			return m.dispatch(state.SwitchView{View: state.ViewContacts})
		}

	case key.Matches(msg, m.keys.Add):
		if view == state.ViewContacts {
			return m.dispatch(state.AddContact{})
		}
		return m.dispatch(state.AddMeeting{})

	case key.Matches(msg, m.keys.Edit):
		id := m.targetID()
		if id == "" {
			m.err = errNothingSelected
			return nil
		}
		if view == state.ViewContacts {
			return m.dispatch(state.EditContact{ID: id})
		}
		return m.dispatch(state.EditMeeting{ID: id})

	case key.Matches(msg, m.keys.Delete):
		id := m.targetID()
		if id == "" {
			m.err = errNothingSelected
			return nil
		}
		if view == state.ViewContacts {
			return m.dispatch(state.RequestDeleteContact{ID: id})
		}
		return m.dispatch(state.RequestDeleteMeeting{ID: id})

	case key.Matches(msg, m.keys.Attendees):
		if view != state.ViewMeetings {
			m.err = errAttendeesNeedMeet
			return nil
		}
		id := m.targetID()
		if id == "" {
			m.err = errNothingSelected
			return nil
		}
		return m.dispatch(state.ManageAttendees{MeetingID: id})

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		return m.search.Focus()

	case key.Matches(msg, m.keys.Cancel):
		if m.search.Value() != "" {
			m.search.SetValue("")
			m.setCursor(0)
			return nil
		}
		if !m.session.Selection().None() {
			return m.dispatch(state.SwitchView{View: view})
		}

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	return nil
}

func (m *AppModel) updateSearch(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		return nil
	case tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.setCursor(0)
		return nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != before {
		m.setCursor(0)
	}
	return cmd
}

// sync brings the drawing state in line with the session after a key has
// been handled.
func (m *AppModel) sync() tea.Cmd {
	view := m.session.ActiveView()
	if view != m.lastView {
		m.lastView = view
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.nav.SetTarget(float64(view))
	}

	cmd := m.syncModals()
	m.syncSelection()
	m.clampCursor()

	return tea.Batch(cmd, m.startAnimation())
}

func (m *AppModel) syncModals() tea.Cmd {
	modals := m.session.Modals()
	var cmd tea.Cmd

	if modals.Contact.Open != m.contactForm.IsVisible() {
		if modals.Contact.Open {
			cmd = m.contactForm.Show(modals.Contact.Editing, m.session.Contacts())
		} else {
			m.contactForm.Hide()
		}
	}

	if modals.Meeting.Open != m.meetingForm.IsVisible() {
		if modals.Meeting.Open {
			cmd = m.meetingForm.Show(modals.Meeting.Editing)
		} else {
			m.meetingForm.Hide()
		}
	}

	if modals.Attendees.Open != m.attendees.IsVisible() {
		if modals.Attendees.Open && modals.Attendees.Target != nil {
			m.attendees.Show(*modals.Attendees.Target, m.session.Contacts())
		} else {
			m.attendees.Hide()
		}
	}

	return cmd
}

// syncSelection keeps a copy of the selected record for the detail panel and
// restarts the slide-in whenever the selection changes. The copy outlives a
// delete so the panel can fade out with its content.
func (m *AppModel) syncSelection() {
	sel := m.session.Selection()
	contact, hasContact := m.session.SelectedContact()
	meeting, hasMeeting := m.session.SelectedMeeting()

	switch {
	case hasContact:
		m.shownContact, m.shownMeeting = &contact, nil
	case hasMeeting:
		m.shownContact, m.shownMeeting = nil, &meeting
		if meeting.Description != "" {
			if _, err := m.markdown.Render(meeting.Description, m.detailTextWidth()); err != nil {
				m.logger.Warn("description render failed", zap.String("meeting_id", meeting.ID), zap.Error(err))
				m.err = err
			}
		}
	}

	if sel == m.shown {
		return
	}
	m.shown = sel

	if hasContact || hasMeeting {
		m.detail.Hide()
		m.detail.Snap()
		m.detail.Show()
		m.cursorTo(sel)
	} else {
		m.detail.Hide()
	}
}

func (m *AppModel) startAnimation() tea.Cmd {
	if m.animating || m.settled() {
		return nil
	}
	m.animating = true
	return animation.Tick(m.anim.FPS)
}

func (m *AppModel) stepAnimation() tea.Cmd {
	m.detail.Step()
	m.nav.Step()
	m.hover.Step()

	if m.settled() {
		m.animating = false
		return nil
	}
	return animation.Tick(m.anim.FPS)
}

func (m *AppModel) settled() bool {
	return m.detail.Settled() && m.nav.Settled() && m.hover.Settled()
}

func (m AppModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	footer := m.help.View(m.keys)
	if m.err != nil {
		footer = errorStyle.Bold(true).Render(fmt.Sprintf("Error: %s", m.err.Error())) + "\n" + footer
	}
	bodyHeight := max(m.height-lipgloss.Height(footer)-1, 6)

	var body string
	switch {
	case m.session.Pending() != nil:
		body = m.overlay(m.confirm.View(m.session.Pending()), bodyHeight)
	case m.session.Modals().Active() == state.ModalContactForm:
		body = m.overlay(m.contactForm.View(), bodyHeight)
	case m.session.Modals().Active() == state.ModalMeetingForm:
		body = m.overlay(m.meetingForm.View(), bodyHeight)
	case m.session.Modals().Active() == state.ModalAttendees:
		body = m.overlay(m.attendees.View(), bodyHeight)
	default:
		listWidth, detailWidth := m.columnWidths()
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			m.renderNav(bodyHeight),
			m.renderList(listWidth, bodyHeight),
			m.renderDetail(detailWidth, bodyHeight),
		)
	}

	return body + "\n" + footer
}

func (m AppModel) overlay(content string, height int) string {
	return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, content)
}

func (m AppModel) columnWidths() (int, int) {
	remaining := max(m.width-navWidth, 48)
	listWidth := max(remaining*2/5, 24)
	return listWidth, max(remaining-listWidth, 24)
}

// detailTextWidth is the width available to text inside the shown panel.
func (m AppModel) detailTextWidth() int {
	if m.width == 0 {
		return 60
	}
	_, detailWidth := m.columnWidths()
	return max(detailWidth-4, 20)
}

// Session exposes the session driving the model, mainly for tests and the
// CLI.
func (m AppModel) Session() *state.Session {
	return m.session
}
