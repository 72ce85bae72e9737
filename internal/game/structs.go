package game

import "github.com/rocketscienceinc/tictactoe-console/internal/entity"

// Board is indexed [row-1][column-1].
type Board [entity.BoardSize][entity.BoardSize]entity.Cell

// WinLines lists every line in the order Winner scans them: lines along the
// first coordinate, lines along the second coordinate, then both diagonals.
var WinLines = [8][3]entity.Position{
	{{Row: 1, Column: 1}, {Row: 2, Column: 1}, {Row: 3, Column: 1}},
	{{Row: 1, Column: 2}, {Row: 2, Column: 2}, {Row: 3, Column: 2}},
	{{Row: 1, Column: 3}, {Row: 2, Column: 3}, {Row: 3, Column: 3}},
	{{Row: 1, Column: 1}, {Row: 1, Column: 2}, {Row: 1, Column: 3}},
	{{Row: 2, Column: 1}, {Row: 2, Column: 2}, {Row: 2, Column: 3}},
	{{Row: 3, Column: 1}, {Row: 3, Column: 2}, {Row: 3, Column: 3}},
	{{Row: 1, Column: 1}, {Row: 2, Column: 2}, {Row: 3, Column: 3}},
	{{Row: 3, Column: 1}, {Row: 2, Column: 2}, {Row: 1, Column: 3}},
}
