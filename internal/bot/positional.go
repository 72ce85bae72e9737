package bot

import "github.com/rocketscienceinc/tictactoe-console/internal/entity"

var allCorners = []entity.Position{entity.BottomLeft, entity.TopRight, entity.BottomRight, entity.TopLeft}

// openingRules apply whoever holds the center.
var openingRules = []rule{
	{
		name:   "take the center",
		when:   func(v view) bool { return v.free(entity.Center) },
		target: entity.Center,
	},
	{
		name:   "take top left when every corner is free",
		when:   func(v view) bool { return v.free(allCorners...) },
		target: entity.TopLeft,
	},
	{
		name: "answer center and bottom right with top right",
		when: func(v view) bool {
			return v.mine(entity.TopLeft) && v.theirs(entity.Center, entity.BottomRight) && v.free(entity.TopRight)
		},
		target: entity.TopRight,
	},
	{
		name: "split main diagonal corners with center right",
		when: func(v view) bool {
			return v.theirs(entity.TopLeft, entity.BottomRight) && v.mine(entity.Center) && v.free(entity.CenterRight)
		},
		target: entity.CenterRight,
	},
	{
		name: "split anti diagonal corners with center left",
		when: func(v view) bool {
			return v.theirs(entity.TopRight, entity.BottomLeft) && v.mine(entity.Center) && v.free(entity.CenterLeft)
		},
		target: entity.CenterLeft,
	},
}

// attackRules apply only while the computer holds the center.
var attackRules = []rule{
	{
		name: "top left against center left takes top right",
		when: func(v view) bool {
			return v.mine(entity.TopLeft) && v.theirs(entity.CenterLeft) && v.free(entity.TopRight)
		},
		target: entity.TopRight,
	},
	{
		name: "top left against an edge takes bottom left",
		when: func(v view) bool {
			edge := v.theirs(entity.TopCenter) || v.theirs(entity.BottomCenter) || v.theirs(entity.CenterRight)
			return v.mine(entity.TopLeft) && edge && v.free(entity.BottomLeft)
		},
		target: entity.BottomLeft,
	},
	{
		name: "bottom left corner taken, take top right",
		when: func(v view) bool {
			return v.theirs(entity.BottomLeft) && v.free(entity.TopRight, entity.BottomRight, entity.TopLeft)
		},
		target: entity.TopRight,
	},
	{
		name: "top right corner taken, take bottom left",
		when: func(v view) bool {
			return v.theirs(entity.TopRight) && v.free(entity.BottomLeft, entity.BottomRight, entity.TopLeft)
		},
		target: entity.BottomLeft,
	},
	{
		name: "bottom right corner taken, take top left",
		when: func(v view) bool {
			return v.theirs(entity.BottomRight) && v.free(entity.BottomLeft, entity.TopRight, entity.TopLeft)
		},
		target: entity.TopLeft,
	},
	{
		name: "top left corner taken, take bottom right",
		when: func(v view) bool {
			return v.theirs(entity.TopLeft) && v.free(entity.BottomLeft, entity.TopRight, entity.BottomRight)
		},
		target: entity.BottomRight,
	},
	{
		name: "top left against bottom right and center left takes top right",
		when: func(v view) bool {
			return v.mine(entity.TopLeft) && v.theirs(entity.BottomRight, entity.CenterLeft) && v.free(entity.TopRight)
		},
		target: entity.TopRight,
	},
	{
		name: "top left against bottom right and top center takes bottom left",
		when: func(v view) bool {
			return v.mine(entity.TopLeft) && v.theirs(entity.BottomRight, entity.TopCenter) && v.free(entity.BottomLeft)
		},
		target: entity.BottomLeft,
	},
	{
		name: "bottom right against top left and bottom center takes top right",
		when: func(v view) bool {
			return v.mine(entity.BottomRight) && v.theirs(entity.TopLeft, entity.BottomCenter) && v.free(entity.TopRight)
		},
		target: entity.TopRight,
	},
	{
		name: "bottom right against top left and center right takes bottom left",
		when: func(v view) bool {
			return v.mine(entity.BottomRight) && v.theirs(entity.TopLeft, entity.CenterRight) && v.free(entity.BottomLeft)
		},
		target: entity.BottomLeft,
	},
	{
		name: "top right against bottom left and center left takes bottom right",
		when: func(v view) bool {
			return v.mine(entity.TopRight) && v.theirs(entity.BottomLeft, entity.CenterLeft) && v.free(entity.BottomRight)
		},
		target: entity.BottomRight,
	},
	{
		name: "top right against bottom left and bottom center takes top left",
		when: func(v view) bool {
			return v.mine(entity.TopRight) && v.theirs(entity.BottomLeft, entity.BottomCenter) && v.free(entity.TopLeft)
		},
		target: entity.TopLeft,
	},
	{
		name: "top right against bottom left and top center takes bottom right",
		when: func(v view) bool {
			return v.mine(entity.TopRight) && v.theirs(entity.BottomLeft, entity.TopCenter) && v.free(entity.BottomRight)
		},
		target: entity.BottomRight,
	},
	{
		name: "top right against bottom left and center right takes top left",
		when: func(v view) bool {
			return v.mine(entity.TopRight) && v.theirs(entity.BottomLeft, entity.CenterRight) && v.free(entity.TopLeft)
		},
		target: entity.TopLeft,
	},
}

// positionalPlay is the high tier's fixed opening and corner play. It gives
// up when the computer does not hold the center after the opening rules.
func (that *HeuristicPlayer) positionalPlay(b board) (entity.Position, string, bool) {
	v := newView(b, that.mark)

	if pos, name, ok := evaluate(openingRules, v); ok {
		return pos, name, true
	}

	if !v.mine(entity.Center) {
		return entity.Position{}, "", false
	}

	return evaluate(attackRules, v)
}
