package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Dave-01999178/cadence/internal/config"
	"github.com/Dave-01999178/cadence/internal/errmsg"
	"github.com/Dave-01999178/cadence/internal/mpris"
	"github.com/Dave-01999178/cadence/internal/notify"
	"github.com/Dave-01999178/cadence/internal/playback"
	"github.com/Dave-01999178/cadence/internal/player"
	"github.com/Dave-01999178/cadence/internal/playlist"
	"github.com/Dave-01999178/cadence/internal/stderr"
	"github.com/Dave-01999178/cadence/internal/tags"
)

const seekStep = 5 * time.Second

var (
	playerBarStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))

	cursorStyle  = lipgloss.NewStyle().Reverse(true)
	playingStyle = lipgloss.NewStyle().Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// Messages fed into the bubbletea loop from the playback subscription.
type (
	stateMsg       playback.StateChange
	trackMsg       playback.TrackChange
	positionMsg    playback.PositionChange
	selectionMsg   playback.SelectionChange
	tracksAddedMsg playback.TracksAdded
	playbackErrMsg playback.ErrorEvent
	subClosedMsg   struct{}
	stderrMsg      string
	stderrDoneMsg  struct{}
	notifiedMsg    uint32
)

type model struct {
	svc      playback.Service
	sub      *playback.Subscription
	notifier notify.Notifier

	tracks   []playback.Track
	cursor   int
	selected int

	state     playback.State
	current   *playback.Track
	position  time.Duration
	remaining time.Duration

	status   string
	notifyID uint32

	width  int
	height int
}

func newModel(svc playback.Service, notifier notify.Notifier) model {
	return model{
		svc:      svc,
		sub:      svc.Subscribe(),
		notifier: notifier,
		tracks:   svc.Tracks(),
		selected: svc.SelectedIndex(),
		state:    svc.State(),
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(waitForEvent(m.sub), waitForStderr())
}

// waitForEvent blocks on the subscription and turns the next playback
// event into a bubbletea message. It is re-issued after every event.
func waitForEvent(sub *playback.Subscription) tea.Cmd {
	return func() tea.Msg {
		select {
		case e := <-sub.StateChanged:
			return stateMsg(e)
		case e := <-sub.TrackChanged:
			return trackMsg(e)
		case e := <-sub.PositionChanged:
			return positionMsg(e)
		case e := <-sub.SelectionChanged:
			return selectionMsg(e)
		case e := <-sub.TracksAdded:
			return tracksAddedMsg(e)
		case e := <-sub.Error:
			return playbackErrMsg(e)
		case <-sub.Done:
			return subClosedMsg{}
		}
	}
}

func waitForStderr() tea.Cmd {
	return func() tea.Msg {
		line, ok := <-stderr.Lines
		if !ok {
			return stderrDoneMsg{}
		}
		return stderrMsg(line)
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case stateMsg:
		m.state = msg.Current
		if m.state == playback.StateIdle {
			m.current = nil
			m.position = 0
			m.remaining = 0
		}
		return m, waitForEvent(m.sub)

	case trackMsg:
		m.current = msg.Current
		m.position = 0
		m.remaining = 0
		if msg.Current != nil {
			m.remaining = msg.Current.Duration
		}
		m.status = ""
		return m, tea.Batch(waitForEvent(m.sub), m.notifyTrack(msg.Current))

	case positionMsg:
		m.position = msg.Position
		m.remaining = msg.Remaining
		return m, waitForEvent(m.sub)

	case selectionMsg:
		m.selected = msg.Index
		if m.cursor >= len(m.tracks) {
			m.cursor = len(m.tracks) - 1
		}
		return m, waitForEvent(m.sub)

	case tracksAddedMsg:
		m.tracks = m.svc.Tracks()
		m.selected = m.svc.SelectedIndex()
		if m.cursor >= len(m.tracks) {
			m.cursor = max(0, len(m.tracks)-1)
		}
		return m, waitForEvent(m.sub)

	case playbackErrMsg:
		m.status = errmsg.FormatWith(errmsg.Op(msg.Operation), filepath.Base(msg.Path), msg.Err)
		return m, waitForEvent(m.sub)

	case stderrMsg:
		m.status = string(msg)
		return m, waitForStderr()

	case notifiedMsg:
		m.notifyID = uint32(msg)
		return m, nil

	case subClosedMsg, stderrDoneMsg:
		return m, nil
	}

	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		_ = m.svc.Stop()
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.tracks)-1 {
			m.cursor++
		}

	case "enter":
		if len(m.tracks) > 0 {
			_ = m.svc.PlayIndex(m.cursor)
		}
	case " ":
		_ = m.svc.Toggle()
	case "s":
		_ = m.svc.Stop()
	case "n":
		_ = m.svc.Next()
	case "b":
		_ = m.svc.Previous()

	case "left":
		_ = m.svc.Seek(-seekStep)
	case "right":
		_ = m.svc.Seek(seekStep)

	case "+", "=":
		m.svc.SetVolume(m.svc.Volume() + 0.05)
	case "-":
		m.svc.SetVolume(m.svc.Volume() - 0.05)
	case "m":
		m.svc.SetMuted(!m.svc.Muted())

	case "x":
		if m.svc.Remove(m.cursor) {
			m.tracks = m.svc.Tracks()
			m.selected = m.svc.SelectedIndex()
			if m.cursor >= len(m.tracks) {
				m.cursor = max(0, len(m.tracks)-1)
			}
		}
	case "c":
		m.svc.ClearPlaylist()
		m.tracks = nil
		m.cursor = 0
		m.selected = -1
	}
	return m, nil
}

// notifyTrack sends a desktop notification for the track now playing,
// replacing the previous one.
func (m model) notifyTrack(track *playback.Track) tea.Cmd {
	if m.notifier == nil || track == nil {
		return nil
	}
	n := notify.ForTrack(track.Title, track.Artist, track.Album,
		notify.TrackArt(track.Path), m.notifyID)
	notifier := m.notifier
	return func() tea.Msg {
		id, err := notifier.Notify(n)
		if err != nil {
			return nil
		}
		return notifiedMsg(id)
	}
}

const playerBarHeight = 3 // top border + content + bottom border

func (m model) View() string {
	listHeight := m.height - playerBarHeight - 1
	if listHeight < 1 {
		listHeight = 1
	}

	var b strings.Builder

	if len(m.tracks) == 0 {
		b.WriteString(dimStyle.Render("  playlist empty - run with files or folders as arguments"))
		b.WriteString("\n")
	}

	first := 0
	if m.cursor >= listHeight {
		first = m.cursor - listHeight + 1
	}
	for i := first; i < len(m.tracks) && i < first+listHeight; i++ {
		t := m.tracks[i]
		marker := "  "
		if m.current != nil && i == m.selected && m.state.IsActive() {
			marker = "♪ "
		}
		line := fmt.Sprintf("%s%s - %s", marker, t.Artist, t.Title)
		if t.Duration > 0 {
			line += dimStyle.Render("  " + formatDuration(t.Duration))
		}
		switch {
		case i == m.cursor:
			line = cursorStyle.Render(line)
		case i == m.selected:
			line = playingStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	for i := len(m.tracks); i < first+listHeight; i++ {
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString(errorStyle.Render(m.status))
	}
	b.WriteString("\n")

	b.WriteString(m.playerBar())
	return b.String()
}

func (m model) playerBar() string {
	innerWidth := m.width - 2
	if innerWidth < 0 {
		innerWidth = 0
	}

	status := "⏹"
	switch m.state {
	case playback.StatePlaying, playback.StateLoading:
		status = "▶"
	case playback.StatePaused:
		status = "⏸"
	}

	left := " " + status + "  "
	if m.current != nil {
		left += fmt.Sprintf("%s - %s", m.current.Artist, m.current.Title)
	} else {
		left += dimStyle.Render("nothing playing")
	}

	right := ""
	if m.current != nil {
		right = fmt.Sprintf("%s / %s", formatDuration(m.position), formatDuration(m.position+m.remaining))
	}
	if m.svc.Muted() {
		right += "  muted"
	} else {
		right += fmt.Sprintf("  vol %d%%", int(m.svc.Volume()*100))
	}
	right += " "

	padding := innerWidth - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	content := left + strings.Repeat(" ", padding) + right
	return playerBarStyle.Width(innerWidth).Render(content)
}

func formatDuration(d time.Duration) string {
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", m, s)
}

// collectFiles expands the given arguments into a flat list of music
// file paths. Directories contribute their music files in sorted
// order; they are not walked recursively.
func collectFiles(args []string) []string {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			continue
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		entries, err := os.ReadDir(arg)
		if err != nil {
			continue
		}
		var dirFiles []string
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			path := filepath.Join(arg, entry.Name())
			if tags.IsMusicFile(path) {
				dirFiles = append(dirFiles, path)
			}
		}
		sort.Strings(dirFiles)
		files = append(files, dirFiles...)
	}
	return files
}

func fatal(op errmsg.Op, err error) {
	stderr.Stop()
	fmt.Fprintln(os.Stderr, errmsg.Format(op, err))
	os.Exit(1)
}

func main() {
	// Capture ALSA noise before the device is opened.
	_ = stderr.Start()
	defer stderr.Stop()

	cfg, err := config.Load()
	if err != nil {
		fatal(errmsg.OpConfigLoad, err)
	}

	engine := player.New()
	engine.SetPositionInterval(time.Duration(cfg.Playback.PositionIntervalMs) * time.Millisecond)
	engine.SetSpeakerBuffer(time.Duration(cfg.Playback.SpeakerBufferMs) * time.Millisecond)
	engine.SetVolume(cfg.Volume.Initial)
	defer engine.Close()

	svc := playback.New(engine, playlist.New(), playback.Options{
		MetadataDefaults: tags.Defaults{
			Title:  cfg.Metadata.UnknownTitle,
			Artist: cfg.Metadata.UnknownArtist,
			Album:  cfg.Metadata.UnknownAlbum,
		},
		SkipOnDecodeError: cfg.Playback.SkipOnDecodeError,
	})
	defer svc.Close()

	args := os.Args[1:]
	if len(args) == 0 && cfg.DefaultFolder != "" {
		args = []string{cfg.DefaultFolder}
	}
	if files := collectFiles(args); len(files) > 0 {
		_, _ = svc.AddFiles(files...)
	}

	var notifier notify.Notifier
	if cfg.Notifications.Enabled {
		notifier, _ = notify.New()
	}

	if cfg.MPRIS.Enabled {
		if adapter, err := mpris.New(svc); err == nil {
			defer adapter.Close()
		}
	}

	p := tea.NewProgram(newModel(svc, notifier), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fatal(errmsg.OpInitialize, err)
	}
}
