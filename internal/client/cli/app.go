package cli

import (
	"bufio"
	"context"
	"log"
	"os"
	"time"

	"github.com/AnandRajBind/Task-Management/internal/client/api"
	"github.com/AnandRajBind/Task-Management/internal/client/config"
	"github.com/AnandRajBind/Task-Management/internal/client/session"
)

type Mode string

const (
	ModeOnline  Mode = "online"
	ModeOffline Mode = "offline"
)

type App struct {
	config    *config.Config
	client    api.Client
	store     *session.Store
	userEmail string
	Mode      Mode
	reader    *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {

	ctx := context.Background()

	store, err := session.InitDatabase(ctx, c.DatabaseDSN)
	if err != nil {
		log.Printf("error initializing session database: %s", err.Error())
		return nil, err
	}

	apiClient := api.NewHTTPClient(c.ServerEndpointAddr, store)

	a := &App{config: c, client: apiClient, store: store, reader: bufio.NewReader(os.Stdin)}

	apiClient.OnSessionExpired(func() {
		a.userEmail = ""
		log.Println("Session expired, please login again")
	})

	// restore a saved session, if any
	if user, err := store.User(ctx); err == nil && user != nil {
		a.userEmail = user.Email
		log.Printf("Restored session for %s", user.Email)
	}

	return a, nil
}

func (a *App) setMode(mode Mode) {
	if a.Mode != mode {
		a.Mode = mode
		log.Printf("Switched to %s mode\n", mode)
	}
}

func (a *App) Run(ctx context.Context) {
	defer a.store.Close()

	go func() {
		a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)
	}()

	log.Println("Welcome to Task CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

func (a *App) isLoggedIn() bool {
	return a.userEmail != ""
}

func (a *App) getStatus() string {
	s := ""
	if a.userEmail != "" {
		s = a.userEmail + " "
	}
	if a.Mode != "" {
		s = s + string(a.Mode)
	}
	return s
}

func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			probeCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			err := a.client.Health(probeCtx)
			cancel()

			if err != nil {
				if a.Mode == ModeOnline {
					a.setMode(ModeOffline)
				}
			} else {
				if a.Mode != ModeOnline {
					a.setMode(ModeOnline)
				}
			}

		case <-ctx.Done():
			return
		}
	}
}
