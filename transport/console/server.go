package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-console/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-console/internal/bot"
	"github.com/rocketscienceinc/tictactoe-console/internal/entity"
	"github.com/rocketscienceinc/tictactoe-console/internal/usecase"
)

const (
	msgBadInput   = "Input only specified numbers!"
	msgOccupied   = "Choose empty location!"
	msgNoWay      = "No way to continue!"
	msgGameOver   = "Game Over!"
	boardBoundary = "-------------"
)

var (
	errExit = errors.New("exit requested")
	errBack = errors.New("back to previous menu")
)

type inputLine struct {
	text string
	err  error
}

type roundManager interface {
	StartRound(ctx context.Context, settings *entity.Settings) error
	LastSettings(ctx context.Context) (*entity.Settings, error)
	RepeatLastRound(ctx context.Context) (*entity.Settings, error)

	ComputerTurn() (*bot.Decision, error)
	HumanTurn(number int) (entity.Position, error)

	Result() usecase.Result
	Cell(pos entity.Position) entity.Cell
	Turn() entity.Cell
}

// Server talks to the player over a line based text stream.
type Server struct {
	logger *slog.Logger
	rounds roundManager

	in    *bufio.Scanner
	lines chan inputLine
	out   io.Writer

	modes map[int]func(ctx context.Context) error
}

func New(logger *slog.Logger, rounds roundManager, in io.Reader, out io.Writer) *Server {
	server := &Server{
		logger: logger.With("component", "console"),
		rounds: rounds,

		in:  bufio.NewScanner(in),
		out: out,

		modes: make(map[int]func(context.Context) error),
	}

	server.modes[0] = server.handleExit
	server.modes[1] = server.handleComputerMode
	server.modes[2] = server.handleHumanMode
	server.modes[3] = server.handleLastUsedMode

	return server
}

// Run plays rounds until the player exits, the input ends or ctx is canceled.
func (that *Server) Run(ctx context.Context) error {
	log := that.logger.With("method", "Run")

	done := make(chan struct{})
	defer close(done)

	that.startReading(done)
	that.showIntro()

	for ctx.Err() == nil {
		err := that.chooseMode(ctx)
		if err == nil {
			err = that.playRound(ctx)
		}

		if errors.Is(err, errExit) && ctx.Err() == nil {
			log.Info("player left the game")
			return nil
		}

		if err != nil && !errors.Is(err, errExit) {
			return err
		}
	}

	log.Info("console stopped", "reason", ctx.Err())

	return nil
}

func (that *Server) chooseMode(ctx context.Context) error {
	for {
		that.println("\nType in Mode field: ")
		that.println("    1 => play with computer.")
		that.println("    2 => play with another person.")
		that.println("    3 => last used option(or Default).")
		that.println("    0 => exit the game.")

		handler, err := readOption(ctx, that, "Mode: ", that.modes, false)
		if err != nil {
			return err
		}

		if err = handler(ctx); !errors.Is(err, errBack) {
			return err
		}
	}
}

func (that *Server) handleExit(_ context.Context) error {
	return errExit
}

func (that *Server) handleComputerMode(ctx context.Context) error {
	levels := map[int]entity.Difficulty{
		1: entity.LowDifficulty,
		2: entity.MediumDifficulty,
		3: entity.HighDifficulty,
	}

	sides := map[int]entity.Cell{
		1: entity.PlayerO,
		2: entity.PlayerX,
	}

	for {
		that.println("\nType in Level field: ")
		that.println("    0 => back to last step.")
		that.println("    1 => play in low level.")
		that.println("    2 => play in medium level.")
		that.println("    3 => play in high level.")

		difficulty, err := readOption(ctx, that, "Level: ", levels, true)
		if err != nil {
			return err
		}

		that.println("\nType in Player field: ")
		that.println("    0 => back to last step.")
		that.println("    1 => you will be Player X.")
		that.println("    2 => you will be Player O.")

		computerMark, err := readOption(ctx, that, "Player: ", sides, true)
		if errors.Is(err, errBack) {
			continue
		}

		if err != nil {
			return err
		}

		return that.rounds.StartRound(ctx, &entity.Settings{
			ComputerActive: true,
			Difficulty:     difficulty,
			ComputerMark:   computerMark,
		})
	}
}

// handleHumanMode keeps the remembered computer level and side so that the
// last used option still has them.
func (that *Server) handleHumanMode(ctx context.Context) error {
	settings, err := that.rounds.LastSettings(ctx)
	if err != nil {
		return fmt.Errorf("failed to load last settings: %w", err)
	}

	settings.ComputerActive = false

	return that.rounds.StartRound(ctx, settings)
}

func (that *Server) handleLastUsedMode(ctx context.Context) error {
	if _, err := that.rounds.RepeatLastRound(ctx); err != nil {
		return fmt.Errorf("failed to repeat last round: %w", err)
	}

	return nil
}

func (that *Server) playRound(ctx context.Context) error {
	for ctx.Err() == nil {
		if _, err := that.rounds.ComputerTurn(); err != nil {
			return fmt.Errorf("computer turn failed: %w", err)
		}

		if that.roundOver() {
			return nil
		}

		if err := that.humanTurn(ctx); err != nil {
			return err
		}

		if that.roundOver() {
			return nil
		}
	}

	return nil
}

func (that *Server) humanTurn(ctx context.Context) error {
	that.showBoard()

	number, ok, err := that.readNumber(ctx, fmt.Sprintf("Player %s: ", that.rounds.Turn()))
	if err != nil {
		return err
	}

	if !ok {
		that.println(msgBadInput)
		return nil
	}

	if number == 0 {
		return errExit
	}

	_, err = that.rounds.HumanTurn(number)

	switch {
	case err == nil:
	case errors.Is(err, apperror.ErrInvalidCell):
		that.println(msgBadInput)
	case errors.Is(err, apperror.ErrCellOccupied):
		that.println(msgOccupied)
	default:
		return fmt.Errorf("human turn failed: %w", err)
	}

	return nil
}

func (that *Server) roundOver() bool {
	result := that.rounds.Result()

	switch result.Outcome {
	case usecase.OutcomeWin:
		that.showBoard()
		that.println(fmt.Sprintf("Winner is %s!", result.Winner))
		that.println(msgGameOver)
	case usecase.OutcomeDraw:
		that.showBoard()
		that.println(msgNoWay)
		that.println(msgGameOver)
	case usecase.OutcomeOngoing:
		return false
	}

	return true
}

func (that *Server) showIntro() {
	that.println("Welcome to Tic Tac Toe!")
	that.println("When the game starts type the number of the cell")
	that.println("you want to fill or 0 to exit the game.")
}

// showBoard prints free cells as the number that selects them.
func (that *Server) showBoard() {
	var sb strings.Builder

	sb.WriteString(boardBoundary + "\n")

	for column := 1; column <= entity.BoardSize; column++ {
		sb.WriteString("|")

		for row := 1; row <= entity.BoardSize; row++ {
			pos := entity.Position{Row: row, Column: column}

			label := that.rounds.Cell(pos).String()
			if label == "" {
				label = strconv.Itoa(pos.Number())
			}

			sb.WriteString(" " + label + " |")
		}

		sb.WriteString("\n" + boardBoundary + "\n")
	}

	that.print(sb.String())
}

// readOption repeats the prompt until one of the options is typed. With
// allowBack, 0 returns errBack.
func readOption[T any](ctx context.Context, that *Server, prompt string, options map[int]T, allowBack bool) (T, error) {
	var zero T

	for {
		number, ok, err := that.readNumber(ctx, prompt)
		if err != nil {
			return zero, err
		}

		if ok && allowBack && number == 0 {
			return zero, errBack
		}

		if option, found := options[number]; ok && found {
			return option, nil
		}

		that.println(msgBadInput)
	}
}

// startReading feeds input lines to the lines channel until the input ends
// or done is closed. Scan blocks, so reading runs apart from the game loop.
func (that *Server) startReading(done <-chan struct{}) {
	lines := make(chan inputLine)
	that.lines = lines

	go func() {
		defer close(lines)

		for that.in.Scan() {
			select {
			case lines <- inputLine{text: that.in.Text()}:
			case <-done:
				return
			}
		}

		if err := that.in.Err(); err != nil {
			select {
			case lines <- inputLine{err: err}:
			case <-done:
			}
		}
	}()
}

// readNumber reports ok=false when the line is not a number. The end of the
// input and a canceled ctx are treated as an exit request.
func (that *Server) readNumber(ctx context.Context, prompt string) (int, bool, error) {
	that.print(prompt)

	var line inputLine

	select {
	case <-ctx.Done():
		return 0, false, errExit
	case next, ok := <-that.lines:
		if !ok {
			return 0, false, errExit
		}

		line = next
	}

	if line.err != nil {
		return 0, false, fmt.Errorf("failed to read input: %w", line.err)
	}

	number, err := strconv.Atoi(strings.TrimSpace(line.text))
	if err != nil {
		return 0, false, nil //nolint: nilerr // bad input is reported to the player
	}

	return number, true, nil
}

func (that *Server) print(text string) {
	if _, err := io.WriteString(that.out, text); err != nil {
		that.logger.Error("failed to write output", "error", err)
	}
}

func (that *Server) println(text string) {
	that.print(text + "\n")
}
