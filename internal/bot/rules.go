package bot

import "github.com/rocketscienceinc/tictactoe-console/internal/entity"

// rule fires when its guard holds; target is always one of the cells the guard
// requires to be free.
type rule struct {
	name   string
	when   func(v view) bool
	target entity.Position
}

// view answers guard questions about the board from the point of view of one mark.
type view struct {
	board board
	me    entity.Cell
	op    entity.Cell
}

func newView(b board, me entity.Cell) view {
	return view{board: b, me: me, op: me.Opponent()}
}

func (that view) holds(mark entity.Cell, positions ...entity.Position) bool {
	for _, pos := range positions {
		if that.board.Get(pos.Row, pos.Column) != mark {
			return false
		}
	}

	return true
}

func (that view) mine(positions ...entity.Position) bool {
	return that.holds(that.me, positions...)
}

func (that view) theirs(positions ...entity.Position) bool {
	return that.holds(that.op, positions...)
}

func (that view) free(positions ...entity.Position) bool {
	for _, pos := range positions {
		if !that.board.IsFree(pos.Row, pos.Column) {
			return false
		}
	}

	return true
}

// evaluate returns the target of the first rule whose guard holds.
func evaluate(rules []rule, v view) (entity.Position, string, bool) {
	for _, r := range rules {
		if r.when(v) {
			return r.target, r.name, true
		}
	}

	return entity.Position{}, "", false
}

type offset struct {
	row    int
	column int
}

// lineRule applies to a cell holding the mark: when the partner cell holds the
// same mark and the target cell is free, the target completes the line.
type lineRule struct {
	name    string
	partner offset
	target  offset
}

var lineRules = []lineRule{
	{name: "row pair extends forward", partner: offset{1, 0}, target: offset{2, 0}},
	{name: "row pair extends backward", partner: offset{1, 0}, target: offset{-1, 0}},
	{name: "column pair extends forward", partner: offset{0, 1}, target: offset{0, 2}},
	{name: "column pair extends backward", partner: offset{0, 1}, target: offset{0, -1}},
	{name: "row gap", partner: offset{2, 0}, target: offset{1, 0}},
	{name: "column gap", partner: offset{0, 2}, target: offset{0, 1}},
}

var diagonalRules = []rule{
	{
		name:   "top left and center take bottom right",
		when:   func(v view) bool { return v.mine(entity.TopLeft, entity.Center) && v.free(entity.BottomRight) },
		target: entity.BottomRight,
	},
	{
		name:   "center and bottom right take top left",
		when:   func(v view) bool { return v.mine(entity.Center, entity.BottomRight) && v.free(entity.TopLeft) },
		target: entity.TopLeft,
	},
	{
		name:   "top left and bottom right take center",
		when:   func(v view) bool { return v.mine(entity.TopLeft, entity.BottomRight) && v.free(entity.Center) },
		target: entity.Center,
	},
	{
		name:   "bottom left and center take top right",
		when:   func(v view) bool { return v.mine(entity.BottomLeft, entity.Center) && v.free(entity.TopRight) },
		target: entity.TopRight,
	},
	{
		name:   "top right and center take bottom left",
		when:   func(v view) bool { return v.mine(entity.TopRight, entity.Center) && v.free(entity.BottomLeft) },
		target: entity.BottomLeft,
	},
	{
		name:   "bottom left and top right take center",
		when:   func(v view) bool { return v.mine(entity.BottomLeft, entity.TopRight) && v.free(entity.Center) },
		target: entity.Center,
	},
}

// linePlay looks for a cell that completes a line of two marks of player.
// Cells are scanned row by row; within a row, columns in order.
func linePlay(b board, player entity.Cell) (entity.Position, string, bool) {
	for row := 1; row <= entity.BoardSize; row++ {
		for column := 1; column <= entity.BoardSize; column++ {
			if b.Get(row, column) != player {
				continue
			}

			origin := entity.Position{Row: row, Column: column}
			for _, r := range lineRules {
				partner := origin.Add(r.partner.row, r.partner.column)
				target := origin.Add(r.target.row, r.target.column)

				if b.Get(partner.Row, partner.Column) == player && b.IsFree(target.Row, target.Column) {
					return target, r.name, true
				}
			}
		}
	}

	return evaluate(diagonalRules, newView(b, player))
}
