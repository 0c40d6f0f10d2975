package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/automoto/arena-mp/config"
	"github.com/automoto/arena-mp/network"
	"github.com/automoto/arena-mp/scenes"
	"github.com/automoto/arena-mp/shared/leveldata"
	"github.com/automoto/arena-mp/systems"
)

const tickRate = 60

func main() {
	server := flag.String("server", "", "Relay websocket URL (default: last used, then "+config.Net.ServerURL+")")
	nick := flag.String("nick", "", "Nickname (default: saved profile)")
	mapPath := flag.String("map", "", "Tiled .tmx arena, or a directory of them, to collide against (default: open arena)")
	arenaName := flag.String("arena", "", "Arena to pick when -map is a directory (default: first by name)")
	duration := flag.Duration("duration", 0, "Leave after this long (0 = until interrupted)")
	difficulty := flag.Int("difficulty", int(config.BotDifficultyNormal), "Scripted input difficulty (0-2)")
	flag.Parse()

	store, err := systems.OpenProfileStore(config.Profile.AppName)
	if err != nil {
		log.Printf("[client] profile disabled: %v", err)
	}
	profile, _ := store.Load()
	if profile == nil {
		profile = &systems.SavedProfile{Nickname: config.Profile.DefaultNickname, ServerURL: config.Net.ServerURL}
	}
	if *nick != "" {
		profile.Nickname = *nick
	}
	if *server != "" {
		profile.ServerURL = *server
	}

	var arena *leveldata.Arena
	if *mapPath != "" {
		arena, err = loadArena(*mapPath, *arenaName)
		if err != nil {
			log.Fatalf("Failed to load map: %v", err)
		}
		log.Printf("[client] arena %q: %d walls, %d spawns", arena.Name, len(arena.Walls), len(arena.Spawns))
	}

	client := network.NewClient(config.Net.SendQueue)
	rec := network.NewReconciler(client, network.ReconcilerOptions{
		UpdateHz:       config.Net.UpdateHz,
		ResendInterval: config.Net.ResendInterval,
		EventBuffer:    config.Net.EventBuffer,
		Damage:         config.Bullet.Damage,
	})
	client.OnMessage(rec.HandleMessage)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if *duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *duration)
		defer cancel()
	}

	dialCtx, cancelDial := context.WithTimeout(ctx, config.Net.DialTimeout)
	err = client.Connect(dialCtx, profile.ServerURL)
	cancelDial()
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}

	scene := scenes.NewArenaScene(rec, arena, time.Now())
	id, err := scene.Join(profile.Nickname)
	if err != nil {
		log.Fatalf("Failed to join: %v", err)
	}
	log.Printf("[client] joined %s as %q (%s)", profile.ServerURL, profile.Nickname, id)

	go rec.RunOutbound(ctx)

	if arena == nil {
		arena = leveldata.OpenArena(config.Arena.Width, config.Arena.Depth)
	}
	bot := scenes.NewScriptedInput(arena, config.BotDifficulty(*difficulty), uint64(time.Now().UnixNano()))
	run(ctx, client, scene, bot)

	client.Disconnect()

	final := scene.View()
	profile.Matches++
	profile.Kills += final.Local.Score
	if err := store.Save(profile); err != nil {
		log.Printf("[client] could not save profile: %v", err)
	}
	logScoreboard(final)
}

func run(ctx context.Context, client *network.Client, scene *scenes.ArenaScene, bot *scenes.ScriptedInput) {
	dt := time.Second / tickRate
	ticker := time.NewTicker(dt)
	defer ticker.Stop()
	report := time.NewTicker(5 * time.Second)
	defer report.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-report.C:
			logScoreboard(scene.View())
		case now := <-ticker.C:
			if s := client.State(); s != network.StateConnected {
				log.Printf("[client] connection %s: %v", s, client.LastError())
				return
			}
			in := bot.Next(scene.View(), scene.Body().Position, now)
			if err := scene.ApplyInput(in, dt); err != nil {
				log.Printf("[client] shoot: %v", err)
			}
			scene.Update(dt)
		}
	}
}

func logScoreboard(v scenes.View) {
	for i, p := range v.Scoreboard {
		status := ""
		if p.IsDead {
			status = " (dead)"
		}
		log.Printf("[client] #%d %-12s %-4s score=%d hp=%d%s", i+1, p.Nickname, p.Team, p.Score, p.HP, status)
	}
}

func loadArena(mapPath, name string) (*leveldata.Arena, error) {
	info, err := os.Stat(mapPath)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return leveldata.LoadArenaDir(os.DirFS(mapPath), ".", name, config.Arena.UnitsPerPixel)
	}
	return leveldata.LoadArena(os.DirFS(filepath.Dir(mapPath)), filepath.Base(mapPath), config.Arena.UnitsPerPixel)
}
