package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hexveil/ntactoe/game"
)

var (
	gameSeq     atomic.Int64
	gamesPlayed atomic.Int64
	totalMoves  atomic.Int64
	firstWins   atomic.Int64
	secondWins  atomic.Int64
	draws       atomic.Int64
)

type GameUpdate struct {
	WorkerID   int
	Number     int64
	FirstMover game.Cell
	Winner     string
	Moves      int
	Elapsed    time.Duration
}

type model struct {
	target      int64
	played      int64
	first       int64
	second      int64
	drawn       int64
	moves       int64
	startTime   time.Time
	recentGames []string
	updates     chan GameUpdate
}

func initialModel(target int64, updates chan GameUpdate) model {
	return model{
		target:    target,
		startTime: time.Now(),
		updates:   updates,
	}
}

type TickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func waitForUpdate(updates chan GameUpdate) tea.Cmd {
	return func() tea.Msg {
		return <-updates
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(waitForUpdate(m.updates), tickCmd())
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case TickMsg:
		m.played = gamesPlayed.Load()
		m.first = firstWins.Load()
		m.second = secondWins.Load()
		m.drawn = draws.Load()
		m.moves = totalMoves.Load()
		if m.played >= m.target {
			return m, tea.Quit
		}
		return m, tickCmd()
	case GameUpdate:
		line := fmt.Sprintf("Worker %d: game %d, %s opened, winner %s, moves %d, %s",
			msg.WorkerID, msg.Number, msg.FirstMover, msg.Winner, msg.Moves, msg.Elapsed.Round(time.Millisecond))
		m.recentGames = append([]string{line}, m.recentGames...)
		if len(m.recentGames) > 10 {
			m.recentGames = m.recentGames[:10]
		}
		return m, waitForUpdate(m.updates)
	}
	return m, nil
}

func (m model) View() string {
	duration := time.Since(m.startTime)
	gamesPerSec := 0.0
	movesPerSec := 0.0
	if duration.Seconds() >= 1 {
		gamesPerSec = float64(m.played) / duration.Seconds()
		movesPerSec = float64(m.moves) / duration.Seconds()
	}

	s := fmt.Sprintf("Games Played:     %d / %d\n", m.played, m.target)
	s += fmt.Sprintf("First Mover Wins: %d\n", m.first)
	s += fmt.Sprintf("Second Mover Wins: %d\n", m.second)
	s += fmt.Sprintf("Draws:            %d\n", m.drawn)
	s += fmt.Sprintf("Total Moves:      %d\n", m.moves)
	s += fmt.Sprintf("Duration:         %s\n", duration.Round(time.Second))
	s += fmt.Sprintf("Games/Sec:        %.2f\n", gamesPerSec)
	s += fmt.Sprintf("Moves/Sec:        %.2f\n\n", movesPerSec)

	s += "Recent Games:\n"
	for _, g := range m.recentGames {
		s += g + "\n"
	}

	s += "\nPress q to quit.\n"
	return s
}

func main() {
	games := flag.Int64("games", 100, "Number of games to play")
	size := flag.Int("size", 3, "Board size (3-6)")
	workers := flag.Int("workers", 4, "Number of parallel games")
	quiet := flag.Bool("quiet", false, "Disable the TUI and log progress instead")
	flag.Parse()

	if *size < game.MinBoardSize || *size > game.MaxBoardSize {
		log.Fatalf("[arena] board size must be between %d and %d", game.MinBoardSize, game.MaxBoardSize)
	}
	if *games <= 0 {
		log.Fatalf("[arena] -games must be positive")
	}
	if *workers < 1 {
		*workers = 1
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(sigCtx)
	defer cancel()

	updates := make(chan GameUpdate, *workers)

	var workerWG sync.WaitGroup
	for i := 0; i < *workers; i++ {
		workerWG.Add(1)
		go func(workerID int) {
			defer workerWG.Done()
			for {
				select {
				case <-ctx.Done():
					return
				default:
				}

				number := gameSeq.Add(1)
				if number > *games {
					return
				}

				// Odd games open with X, even games with O, so the
				// first-mover tallies are balanced across the run.
				firstMover := game.CellX
				if number%2 == 0 {
					firstMover = game.CellO
				}

				start := time.Now()
				status, moves, err := playOneGame(*size, firstMover)
				if err != nil {
					log.Printf("[arena] worker %d: game %d aborted: %v", workerID, number, err)
					continue
				}
				recordResult(status, firstMover)
				gamesPlayed.Add(1)

				select {
				case updates <- GameUpdate{
					WorkerID:   workerID,
					Number:     number,
					FirstMover: firstMover,
					Winner:     winnerLabel(status),
					Moves:      moves,
					Elapsed:    time.Since(start),
				}:
				default:
				}
			}
		}(i)
	}

	if *quiet {
		runQuiet(ctx, *games, updates)
	} else {
		p := tea.NewProgram(initialModel(*games, updates))
		if _, err := p.Run(); err != nil {
			log.Fatalf("[arena] %v", err)
		}
	}

	cancel()
	workerWG.Wait()
	printSummary(*size)
}

func playOneGame(size int, firstMover game.Cell) (game.GameStatus, int, error) {
	first := game.FirstMoveX
	if firstMover == game.CellO {
		first = game.FirstMoveO
	}
	settings := game.GameSettings{
		BoardSize: size,
		XType:     game.PlayerAI,
		OType:     game.PlayerAI,
		FirstMove: first,
	}
	g, err := game.NewGame(settings)
	if err != nil {
		return statusAborted, 0, err
	}
	g.Start()

	players := map[game.Cell]*game.AIPlayer{
		game.CellX: game.NewAIPlayer(game.CellX, size),
		game.CellO: game.NewAIPlayer(game.CellO, size),
	}

	moves := 0
	for {
		state := g.State()
		if state.Status != game.StatusRunning {
			return state.Status, moves, nil
		}
		move := players[state.ToMove].ChooseMove(state)
		if ok, reason := g.TryApplyMove(move); !ok {
			return statusAborted, moves, fmt.Errorf("engine move rejected: %s", reason)
		}
		moves++
		totalMoves.Add(1)
	}
}

// statusAborted marks a game that ended on an error instead of a result.
const statusAborted = game.GameStatus(-1)

func recordResult(status game.GameStatus, firstMover game.Cell) {
	winner := status.Winner()
	switch {
	case winner == game.CellEmpty:
		draws.Add(1)
	case winner == firstMover:
		firstWins.Add(1)
	default:
		secondWins.Add(1)
	}
}

func winnerLabel(status game.GameStatus) string {
	switch status {
	case game.StatusXWon:
		return "X"
	case game.StatusOWon:
		return "O"
	default:
		return "draw"
	}
}

func runQuiet(ctx context.Context, target int64, updates chan GameUpdate) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case update := <-updates:
			log.Printf("[arena] worker %d: game %d, %s opened, winner %s, moves %d, %s",
				update.WorkerID, update.Number, update.FirstMover, update.Winner,
				update.Moves, update.Elapsed.Round(time.Millisecond))
			if gamesPlayed.Load() >= target {
				return
			}
		case <-ticker.C:
			log.Printf("[arena] progress: %d/%d games, first=%d second=%d draws=%d",
				gamesPlayed.Load(), target, firstWins.Load(), secondWins.Load(), draws.Load())
			if gamesPlayed.Load() >= target {
				return
			}
		}
	}
}

func printSummary(size int) {
	played := gamesPlayed.Load()
	fmt.Printf("\nArena results (%dx%d):\n", size, size)
	fmt.Printf("  games:             %d\n", played)
	fmt.Printf("  first mover wins:  %d\n", firstWins.Load())
	fmt.Printf("  second mover wins: %d\n", secondWins.Load())
	fmt.Printf("  draws:             %d\n", draws.Load())
	if played > 0 {
		fmt.Printf("  draw rate:         %.1f%%\n", 100*float64(draws.Load())/float64(played))
	}
}
