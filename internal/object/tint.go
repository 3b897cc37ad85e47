package object

// Tint is a 0xRRGGBB colour multiplied into a sprite. White leaves it unchanged.
type Tint uint32

// Colours used by the game.
const (
	NoTint           Tint = 0xffffff
	TintRed          Tint = 0xff0000
	TintYellow       Tint = 0xffff00
	TintGreen        Tint = 0x00ff00
	FragmentTint          = TintYellow
	PlayerDamageTint Tint = 0xff9999
)

// targetTints is indexed by hp-1: one hit left is red, full health is green.
var targetTints = [...]Tint{TintRed, TintYellow, TintGreen}

// TintForHP returns the target colour for the given hit-points,
// or NoTint when hp has no entry in the table.
func TintForHP(hp int) Tint {
	if hp < 1 || hp > len(targetTints) {
		return NoTint
	}
	return targetTints[hp-1]
}

// RGB splits the tint into its channels.
func (t Tint) RGB() (r, g, b uint8) {
	return uint8(t >> 16), uint8(t >> 8), uint8(t)
}
