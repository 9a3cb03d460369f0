package scenes

import (
	"context"
	"fmt"
	"image/color"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/automoto/orbs-mp/directory"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// BrowserScene lists relays from the directory and joins the chosen one
// using the dial URL and disconnect mode the relay advertised.
type BrowserScene struct {
	sceneChanger SceneChanger
	session      Session
	httpClient   *http.Client
	once         sync.Once

	mu       sync.Mutex
	relays   []directory.Relay
	status   string
	fetching bool
}

func NewBrowserScene(sc SceneChanger, s Session) *BrowserScene {
	return &BrowserScene{
		sceneChanger: sc,
		session:      s,
		httpClient:   &http.Client{Timeout: 5 * time.Second},
	}
}

func (s *BrowserScene) Update() {
	s.once.Do(s.refresh)

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		s.refresh()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyO) {
		s.join(nil)
		return
	}

	s.mu.Lock()
	relays := s.relays
	s.mu.Unlock()
	for i := 0; i < len(relays) && i < 9; i++ {
		if inpututil.IsKeyJustPressed(ebiten.Key1 + ebiten.Key(i)) {
			s.join(&relays[i])
			return
		}
	}
}

func (s *BrowserScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{20, 20, 30, 255})

	s.mu.Lock()
	defer s.mu.Unlock()

	var b strings.Builder
	b.WriteString("RELAYS  (1-9 join, R refresh, O offline)\n\n")
	for i, r := range s.relays {
		if i >= 9 {
			break
		}
		fmt.Fprintf(&b, "%d  %-24s %-8s %3d players  %-8s %s\n", i+1, r.Name, r.Region, r.Players, r.Disconnect, r.DialURL())
	}
	if len(s.relays) == 0 && !s.fetching {
		b.WriteString("no relays registered\n")
	}
	if s.status != "" {
		b.WriteString("\n" + s.status)
	}
	ebitenutil.DebugPrintAt(screen, b.String(), 16, 16)
}

// join starts a session on relay, or offline when relay is nil.
func (s *BrowserScene) join(relay *directory.Relay) {
	session := s.session
	session.RelayAddress = ""
	if relay != nil {
		session.RelayAddress = relay.DialURL()
		session.DisconnectNotices = relay.AnnouncesDisconnects()
	}
	arena, err := StartSession(s.sceneChanger, session)
	if err != nil {
		s.mu.Lock()
		s.status = err.Error()
		s.mu.Unlock()
		return
	}
	s.sceneChanger.ChangeScene(arena)
}

// refresh fetches the relay list in the background.
func (s *BrowserScene) refresh() {
	s.mu.Lock()
	if s.fetching {
		s.mu.Unlock()
		return
	}
	s.fetching = true
	s.status = "refreshing..."
	s.mu.Unlock()

	go func() {
		relays, err := directory.Fetch(context.Background(), s.httpClient, s.session.DirectoryURL, s.session.Region)
		s.mu.Lock()
		defer s.mu.Unlock()
		s.fetching = false
		if err != nil {
			log.Printf("[browser] %v", err)
			s.status = err.Error()
			return
		}
		s.relays = relays
		s.status = ""
	}()
}
