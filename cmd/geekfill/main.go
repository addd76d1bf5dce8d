// Command geekfill answers a Geekbot standup from your GitHub activity.
// It derives the four standup answers from your public event feed and
// either prints them, replies once over Slack, or keeps watching
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"geekfill/internal/adapters/github"
	"geekfill/internal/adapters/slack"
	"geekfill/internal/core/standup"
	"geekfill/internal/core/version"
	"geekfill/internal/platform/config"
	perr "geekfill/internal/platform/errors"
	"geekfill/internal/platform/logger"
	"geekfill/internal/services/responder"
)

// runOptions is the validated shape of one invocation
type runOptions struct {
	User          string `validate:"required"`
	Organizations []string
	Answer        string `validate:"oneof=log respond watch"`
	From          string `validate:"required"`
	SlackToken    string
	BotName       string
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		logger.Get().Fatal().Err(err).Msg("standup run failed")
	}
}

func newApp() *cli.App {
	bi := version.Info()

	return &cli.App{
		Name:    bi.Tool,
		Usage:   "answer Geekbot standup questions from your GitHub activity",
		Version: fmt.Sprintf("%s (%s, %s)", bi.Version, bi.Commit, bi.Date),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "user",
				Aliases:  []string{"u"},
				Usage:    "GitHub username whose public events feed the answers",
				EnvVars:  []string{"GEEKFILL_USER"},
				Required: true,
			},
			&cli.StringFlag{
				Name:    "organizations",
				Aliases: []string{"o"},
				Usage:   "comma-separated org prefixes to keep (empty keeps everything)",
				EnvVars: []string{"GEEKFILL_ORGANIZATIONS"},
			},
			&cli.StringFlag{
				Name:    "answer",
				Aliases: []string{"a"},
				Value:   "log",
				Usage:   "answer mode: log (print to stdout), respond (reply once over Slack), watch (keep replying)",
				EnvVars: []string{"GEEKFILL_ANSWER"},
			},
			&cli.StringFlag{
				Name:    "from",
				Aliases: []string{"f"},
				Value:   "yesterday",
				Usage:   "natural-language start of the activity window (e.g. \"yesterday\", \"3 days ago\")",
				EnvVars: []string{"GEEKFILL_FROM"},
			},
		},
		Action: run,
	}
}

func run(c *cli.Context) error {
	lopt := logger.FromEnv()
	lopt.Service = version.Info().Tool
	lopt.StaticFields = map[string]string{"run_id": uuid.NewString()}
	logger.Init(lopt)

	root := config.New()
	slackCfg := root.Prefix("SLACK_")
	ghCfg := root.Prefix("GITHUB_")
	opts := runOptions{
		User:          c.String("user"),
		Organizations: splitCSV(c.String("organizations")),
		Answer:        c.String("answer"),
		From:          c.String("from"),
		SlackToken:    slackCfg.MayString("TOKEN", ""),
		BotName:       slackCfg.MayString("BOT_NAME", "geekbot"),
	}
	if err := validator.New().Struct(opts); err != nil {
		return perr.Wrap(err, perr.ErrorCodeValidation, "invalid invocation")
	}
	// pre-flight: the token is required in every mode, before anything
	// touches the network
	if opts.SlackToken == "" {
		return perr.Configf("SLACK_TOKEN is required")
	}

	gh := github.NewClient(github.Options{
		BaseURL: ghCfg.MayString("BASE_URL", ""),
		Timeout: ghCfg.MayDuration("HTTP_TIMEOUT", 10*time.Second),
	})
	engine := standup.NewEngine(opts.User, opts.Organizations, opts.From, gh, standup.FakePhrases{})

	ctx := logger.WithSession(context.Background(), uuid.NewString())

	if opts.Answer == "log" {
		return responder.PrintAnswers(ctx, os.Stdout, engine)
	}

	sc := slack.NewClient(slack.Options{
		Token:   opts.SlackToken,
		Timeout: slackCfg.MayDuration("HTTP_TIMEOUT", 10*time.Second),
	})
	connect := func(ctx context.Context, userFilter string) (responder.Stream, error) {
		stream, err := sc.StartRTM(ctx, userFilter)
		if err != nil {
			return nil, err
		}
		return stream, nil
	}

	r := responder.New(engine, sc, sc, connect, responder.Config{
		BotName:   opts.BotName,
		ExitOnEnd: opts.Answer == "respond",
	})
	return r.Run(ctx)
}

// splitCSV trims entries and drops blanks so "a, ,b," becomes ["a" "b"]
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
