package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
	"gopkg.in/yaml.v3"

	"github.com/tatianab/miu-game/internal/config"
	"github.com/tatianab/miu-game/internal/content"
	"github.com/tatianab/miu-game/internal/engine"
	"github.com/tatianab/miu-game/internal/logging"
	"github.com/tatianab/miu-game/internal/rules"
)

const maxTurns = 12

// move is what the player model answers with.
type move struct {
	Rule      string `yaml:"rule"`
	Site      int    `yaml:"site"`
	Direction string `yaml:"direction"`
}

func main() {
	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if !cfg.HintsEnabled() {
		log.Fatal("GEMINI_API_KEY is required to simulate a player")
	}
	logging.Init(cfg.LogLevel, "text")

	gameConfig, err := content.Load(cfg.RuleSet)
	if err != nil {
		log.Fatalf("Failed to load puzzle set: %v", err)
	}

	// Initialize the Player LLM
	playerClient, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
	if err != nil {
		log.Fatalf("Failed to create player client: %v", err)
	}
	defer playerClient.Close()
	playerModel := playerClient.GenerativeModel(cfg.GeminiModel)

	session := engine.NewSession(gameConfig, logging.New("engine"))
	solved := 0
	for i, l := range gameConfig.Levels {
		if err := session.SelectLevel(i); err != nil {
			log.Fatalf("Failed to select level: %v", err)
		}
		fmt.Printf("--- Level %d: %s -> %s (%s) ---\n", i+1, l.Start, l.Target, l.Difficulty)
		if playLevel(ctx, playerModel, session) {
			solved++
		}
		fmt.Println()
	}
	fmt.Printf("Solved %d of %d levels in %s\n", solved, len(gameConfig.Levels), gameConfig.Title)
}

func playLevel(ctx context.Context, model *genai.GenerativeModel, session *engine.Session) bool {
	feedback := ""
	for turn := 1; turn <= maxTurns; turn++ {
		reply, err := engine.Generate(ctx, model, movePrompt(session, feedback))
		if err != nil {
			fmt.Printf("Player error: %v\n", err)
			return false
		}

		mv, err := parseMove(reply)
		if err != nil {
			fmt.Printf("Turn %d: unreadable move: %v\n", turn, err)
			feedback = fmt.Sprintf("Your last reply could not be read (%v). Answer with YAML only.", err)
			continue
		}
		fmt.Printf("Turn %d: %s at site %d (%s)\n", turn, mv.Rule, mv.Site, mv.Direction)

		if err := applyMove(session, mv); err != nil {
			fmt.Printf("  rejected: %v\n", err)
			feedback = "Your last move was rejected: " + err.Error()
			continue
		}
		feedback = ""

		b := session.Chain()
		fmt.Printf("  forward:  %s\n", strings.Join(b.Forward.IntermediateStrings, " -> "))
		if session.Config().Bidirectional {
			fmt.Printf("  backward: %s\n", strings.Join(b.Reverse.IntermediateStrings, " -> "))
		}
		if session.Solved() {
			fmt.Println("Solved!")
			return true
		}
	}
	fmt.Println("Out of turns.")
	return false
}

// parseMove reads a YAML move, tolerating a surrounding code fence.
func parseMove(reply string) (move, error) {
	text := strings.TrimSpace(reply)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```yaml")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	}

	var mv move
	if err := yaml.Unmarshal([]byte(text), &mv); err != nil {
		return move{}, err
	}
	if mv.Rule == "" {
		return move{}, errors.New("missing rule")
	}
	return mv, nil
}

func applyMove(session *engine.Session, mv move) error {
	d, err := rules.ParseDirection(mv.Direction)
	if err != nil {
		return err
	}
	if err := session.SetDirection(d); err != nil {
		return err
	}
	return session.ApplyRuleID(mv.Rule, mv.Site)
}

func movePrompt(session *engine.Session, feedback string) string {
	gc := session.Config()
	l := session.Level()
	b := session.Chain()

	directions := []rules.Direction{rules.Forward}
	goal := fmt.Sprintf("Reach %s from %s.", l.Target, l.Start)
	if gc.Bidirectional {
		directions = append(directions, rules.Backward)
		goal = fmt.Sprintf("Grow a forward chain from %s and a backward chain from %s until they share a string.", l.Start, l.Target)
	}

	var sb strings.Builder
	for _, d := range directions {
		current := b.Side(d).CurrentString
		fmt.Fprintf(&sb, "\n%s chain: %s\n", d, strings.Join(b.Side(d).IntermediateStrings, " -> "))
		for _, r := range gc.Rules {
			if !r.Supports(d) {
				continue
			}
			matches := r.Matcher(d).FindApplications(current)
			if len(matches) == 0 {
				continue
			}
			previews := make([]string, len(matches))
			for i, m := range matches {
				previews[i] = fmt.Sprintf("site %d -> %s", i, m.Preview)
			}
			fmt.Fprintf(&sb, "  %s (%s): %s\n", r.ID, r.Description, strings.Join(previews, ", "))
		}
	}

	prompt := fmt.Sprintf(`You are playing the MIU string rewriting puzzle "%s".
%s
%s
Pick one move. Answer with YAML only, no commentary:
rule: <rule id>
site: <site number>
direction: <forward or backward>`, gc.Title, goal, sb.String())
	if feedback != "" {
		prompt = feedback + "\n\n" + prompt
	}
	return prompt
}
