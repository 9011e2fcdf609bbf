// Package main provides an admin CLI for inspecting and adjusting characters.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/mvannote/ashvale/internal/config"
	"github.com/mvannote/ashvale/internal/game/player"
	"github.com/mvannote/ashvale/internal/game/progression"
	"github.com/mvannote/ashvale/internal/game/ruleset"
	"github.com/mvannote/ashvale/internal/observability"
	"github.com/mvannote/ashvale/internal/storage/postgres"
)

const usage = `usage: playerctl [-config path] <command> [flags]

commands:
  create   -discord <id> -name <name>    create a new character
  profile  -discord <id> | -number <n>   show a character profile
  stats    -discord <id>                 show resolved combat stats
  grant    -discord <id> [-xp n] [-gold n] [-rubidics n] [-gravitas n]
           [-resource name -amount n]    grant xp, currency, or resources
  count                                  total character count
  office   -office <name>                show the current officeholder
  appoint  -office <name> -discord <id>  appoint an officeholder
`

func main() {
	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		os.Exit(1)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "building logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	rules, err := ruleset.LoadRules(cfg.Content.RulesDir)
	if err != nil {
		logger.Fatal("loading rule tables", zap.Error(err))
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("connecting to database", zap.Error(err))
	}
	defer pool.Close()

	repo := postgres.NewPlayerRepository(pool.DB(), rules)

	command := flag.Arg(0)
	args := flag.Args()[1:]
	if err := run(ctx, logger, repo, command, args); err != nil {
		logger.Fatal("command failed", zap.String("command", command), zap.Error(err))
	}
}

func run(ctx context.Context, logger *zap.Logger, repo *postgres.PlayerRepository, command string, args []string) error {
	switch command {
	case "create":
		return runCreate(ctx, logger, repo, args)
	case "profile":
		return runProfile(ctx, repo, args)
	case "stats":
		return runStats(ctx, repo, args)
	case "grant":
		return runGrant(ctx, logger, repo, args)
	case "count":
		return runCount(ctx, repo)
	case "office":
		return runOffice(ctx, repo, args)
	case "appoint":
		return runAppoint(ctx, logger, repo, args)
	}
	return fmt.Errorf("unknown command %q", command)
}

func runCreate(ctx context.Context, logger *zap.Logger, repo *postgres.PlayerRepository, args []string) error {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	discordID := fs.Int64("discord", 0, "Discord ID (required)")
	name := fs.String("name", "", "character name (required)")
	_ = fs.Parse(args)
	if *discordID == 0 || *name == "" {
		fs.Usage()
		return errors.New("create requires -discord and -name")
	}

	p, err := repo.CreateCharacter(ctx, *discordID, *name)
	if err != nil {
		return err
	}
	logger.Info("character created",
		zap.Int64("discord_id", p.DiscordID),
		zap.Int64("number", p.UniqueID),
		zap.String("name", p.Name),
	)
	fmt.Printf("created %s (#%d) for %d\n", p.Name, p.UniqueID, p.DiscordID)
	return nil
}

func runProfile(ctx context.Context, repo *postgres.PlayerRepository, args []string) error {
	fs := flag.NewFlagSet("profile", flag.ExitOnError)
	discordID := fs.Int64("discord", 0, "Discord ID")
	number := fs.Int64("number", 0, "character number")
	_ = fs.Parse(args)

	p, err := loadPlayer(ctx, repo, *discordID, *number)
	if err != nil {
		return err
	}

	level, remaining := progression.NextLevel(p.XP)
	fmt.Printf("%s (#%d, discord %d)\n", p.Name, p.UniqueID, p.DiscordID)
	fmt.Printf("  level %d (%d xp, %d to next)\n", level, p.XP, remaining)
	fmt.Printf("  %s from %s, at %s\n", p.Occupation, p.Origin, p.Location)
	fmt.Printf("  gold %d, rubidics %d, gravitas %d\n", p.Gold, p.Rubidics, p.Gravitas)
	fmt.Printf("  weapon: %s\n", describe(p.Weapon.Name, p.Weapon.IsEmpty()))
	fmt.Printf("  accessory: %s\n", describe(p.Accessory.Name, p.Accessory.IsEmpty()))
	fmt.Printf("  companions: %s, %s\n",
		describe(p.Companion1.Name, p.Companion1.IsEmpty()),
		describe(p.Companion2.Name, p.Companion2.IsEmpty()))
	if !p.Association.IsEmpty() {
		fmt.Printf("  %s of %s (%s)\n", p.Rank, p.Association.Name, p.Association.Type)
	}
	if p.Destination != "" {
		if p.OnExpedition() {
			fmt.Printf("  on expedition since %s\n", time.Unix(p.Adventure, 0).Format(time.RFC822))
		} else {
			fmt.Printf("  travelling to %s, arrives %s\n", p.Destination,
				time.Unix(p.Adventure, 0).Format(time.RFC822))
		}
	}
	return nil
}

func runStats(ctx context.Context, repo *postgres.PlayerRepository, args []string) error {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	discordID := fs.Int64("discord", 0, "Discord ID (required)")
	_ = fs.Parse(args)

	p, err := loadPlayer(ctx, repo, *discordID, 0)
	if err != nil {
		return err
	}
	fmt.Printf("%s: attack %d, crit %d, hp %d, defense %d\n",
		p.Name, p.Attack(), p.Crit(), p.HP(), p.Defense())
	return nil
}

func runGrant(ctx context.Context, logger *zap.Logger, repo *postgres.PlayerRepository, args []string) error {
	fs := flag.NewFlagSet("grant", flag.ExitOnError)
	discordID := fs.Int64("discord", 0, "Discord ID (required)")
	xp := fs.Int("xp", 0, "xp to grant")
	gold := fs.Int("gold", 0, "gold delta")
	rubidics := fs.Int("rubidics", 0, "rubidics delta")
	gravitas := fs.Int("gravitas", 0, "gravitas delta")
	resource := fs.String("resource", "", "resource name")
	amount := fs.Int("amount", 0, "resource delta")
	_ = fs.Parse(args)

	p, err := loadPlayer(ctx, repo, *discordID, 0)
	if err != nil {
		return err
	}

	if *xp > 0 {
		event, err := p.GainXP(ctx, *xp)
		if err != nil {
			return err
		}
		if event != nil {
			logger.Info("level up",
				zap.String("event_id", event.ID),
				zap.Int("level", event.Level),
				zap.Int("gold", event.Gold),
				zap.Int("rubidics", event.Rubidics),
			)
			fmt.Printf("%s reached level %d (+%d gold, +%d rubidics)\n",
				p.Name, event.Level, event.Gold, event.Rubidics)
		}
	}
	if *gold != 0 {
		if err := p.GiveGold(ctx, *gold); err != nil {
			return err
		}
	}
	if *rubidics != 0 {
		if err := p.GiveRubidics(ctx, *rubidics); err != nil {
			return err
		}
	}
	if *gravitas != 0 {
		if err := p.GiveGravitas(ctx, *gravitas); err != nil {
			return err
		}
	}
	if *resource != "" {
		res, err := player.ParseResource(*resource)
		if err != nil {
			return err
		}
		if err := p.GiveResource(ctx, res, *amount); err != nil {
			return err
		}
	}

	fmt.Printf("%s: %d xp, %d gold, %d rubidics, %d gravitas\n",
		p.Name, p.XP, p.Gold, p.Rubidics, p.Gravitas)
	return nil
}

func runCount(ctx context.Context, repo *postgres.PlayerRepository) error {
	count, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%d characters\n", count)
	return nil
}

func runOffice(ctx context.Context, repo *postgres.PlayerRepository, args []string) error {
	fs := flag.NewFlagSet("office", flag.ExitOnError)
	office := fs.String("office", "", "office name (required)")
	_ = fs.Parse(args)
	if *office == "" {
		fs.Usage()
		return errors.New("office requires -office")
	}

	id, name, err := repo.Officeholder(ctx, *office)
	if errors.Is(err, postgres.ErrNoOfficeholder) {
		fmt.Printf("%s: vacant\n", *office)
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Printf("%s: %s (discord %d)\n", *office, name, id)
	return nil
}

func runAppoint(ctx context.Context, logger *zap.Logger, repo *postgres.PlayerRepository, args []string) error {
	fs := flag.NewFlagSet("appoint", flag.ExitOnError)
	office := fs.String("office", "", "office name (required)")
	discordID := fs.Int64("discord", 0, "Discord ID (required)")
	_ = fs.Parse(args)
	if *office == "" || *discordID == 0 {
		fs.Usage()
		return errors.New("appoint requires -office and -discord")
	}

	p, err := repo.ByDiscordID(ctx, *discordID)
	if err != nil {
		return err
	}
	if err := repo.AppointOfficeholder(ctx, *office, *discordID); err != nil {
		return err
	}
	logger.Info("officeholder appointed",
		zap.String("office", *office),
		zap.Int64("discord_id", *discordID),
	)
	fmt.Printf("appointed %s as %s\n", p.Name, *office)
	return nil
}

func loadPlayer(ctx context.Context, repo *postgres.PlayerRepository, discordID, number int64) (*player.Player, error) {
	switch {
	case discordID != 0:
		return repo.ByDiscordID(ctx, discordID)
	case number != 0:
		return repo.ByNumber(ctx, number)
	}
	return nil, errors.New("a -discord or -number flag is required")
}

func describe(name string, empty bool) string {
	if empty {
		return "none"
	}
	return name
}
