package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/muesli/termenv"

	"github.com/hexveil/ntactoe/game"
)

// aiPollInterval is how often the console loop checks whether the engine
// finished thinking.
const aiPollInterval = 10 * time.Millisecond

func main() {
	out := termenv.NewOutput(os.Stdout)
	scanner := bufio.NewScanner(os.Stdin)

	printBanner()
	size := promptBoardSize(scanner)

	settings := game.GameSettings{
		BoardSize: size,
		XType:     game.PlayerAI,
		OType:     game.PlayerHuman,
		FirstMove: game.FirstMoveRandom,
	}
	g, err := game.NewGame(settings)
	if err != nil {
		log.Fatalf("[ntactoe] %v", err)
	}
	g.Start()

	fmt.Printf("Welcome to %dx%d Tic-Tac-Toe!\n", size, size)
	fmt.Println("You are 'O', AI is 'X'")
	printBoard(out, g.State())
	if g.State().ToMove == game.CellO {
		fmt.Println("\n🎲 You go first!")
	} else {
		fmt.Println("\n🎲 AI goes first!")
	}

	runGame(out, scanner, g)
}

// runGame drives the turn loop, printing the board after every applied move.
func runGame(out *termenv.Output, scanner *bufio.Scanner, g *game.Game) {
	for {
		state := g.State()
		if state.Status.Over() {
			announceResult(state.Status)
			return
		}

		if g.CurrentPlayerIsHuman() {
			move := promptMove(scanner, state)
			g.SubmitHumanMove(move)
			g.Tick()
		} else {
			fmt.Println("AI is thinking...")
			for !g.Tick() {
				time.Sleep(aiPollInterval)
			}
		}
		printBoard(out, g.State())
	}
}

func printBanner() {
	fmt.Println(strings.Repeat("=", 40))
	fmt.Println("      TIC-TAC-TOE")
	fmt.Println(strings.Repeat("=", 40))
}

func promptBoardSize(scanner *bufio.Scanner) int {
	for {
		fmt.Print("Choose board size (3-6): ")
		if !scanner.Scan() {
			fmt.Println()
			os.Exit(0)
		}
		size, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
		if err != nil {
			fmt.Println("Please enter a valid number.")
			continue
		}
		if size < game.MinBoardSize || size > game.MaxBoardSize {
			fmt.Println("Please enter a number between 3 and 6.")
			continue
		}
		return size
	}
}

func promptMove(scanner *bufio.Scanner, state game.GameState) game.Move {
	max := state.Board.Size()*state.Board.Size() - 1
	for {
		fmt.Printf("Enter your move (0-%d): ", max)
		if !scanner.Scan() {
			fmt.Println()
			os.Exit(0)
		}
		index, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
		if err != nil {
			fmt.Printf("Please enter a valid number (0-%d).\n", max)
			continue
		}
		if index < 0 || index > max {
			fmt.Printf("Please enter a number between 0 and %d.\n", max)
			continue
		}
		if !state.Board.IsEmpty(index) {
			fmt.Println("Invalid move! Spot taken.")
			continue
		}
		return game.NewMove(index)
	}
}

// printBoard renders the grid with zero-padded indices on free cells so the
// player can type a move straight off the screen.
func printBoard(out *termenv.Output, state game.GameState) {
	size := state.Board.Size()
	separator := strings.Repeat("-", size*4+1)

	winning := make(map[int]bool, len(state.WinningLine))
	for _, index := range state.WinningLine {
		winning[index] = true
	}

	fmt.Println()
	fmt.Println(separator)
	for y := 0; y < size; y++ {
		cells := make([]string, 0, size)
		for x := 0; x < size; x++ {
			index := y*size + x
			cells = append(cells, renderCell(out, state.Board.At(index), index, winning[index]))
		}
		fmt.Println("| " + strings.Join(cells, " | ") + " |")
		fmt.Println(separator)
	}
}

func renderCell(out *termenv.Output, cell game.Cell, index int, highlight bool) string {
	if cell == game.CellEmpty {
		return out.String(fmt.Sprintf("%02d", index)).Faint().String()
	}
	style := out.String(cell.String()).Bold()
	switch cell {
	case game.CellX:
		style = style.Foreground(termenv.ANSIBrightRed)
	case game.CellO:
		style = style.Foreground(termenv.ANSIBrightCyan)
	}
	if highlight {
		style = style.Underline().Foreground(termenv.ANSIBrightGreen)
	}
	return style.String()
}

func announceResult(status game.GameStatus) {
	switch status {
	case game.StatusOWon:
		fmt.Println("You Win!")
	case game.StatusXWon:
		fmt.Println("AI Wins!")
	default:
		fmt.Println("It's a Draw!")
	}
}
