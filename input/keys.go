package input

// Key is a keyboard key code. The numbering is part of the stable
// boundary surface: codes are appended, never reordered.
type Key int32

const (
	KeyA Key = iota
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeySpace
	KeyEnter
	KeyEscape
	KeyTab
	KeyBackspace
	KeyLeftShift
	KeyRightShift
	KeyLeftCtrl
	KeyRightCtrl
	KeyLeftAlt
	KeyRightAlt
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	keyCount // sentinel, keep last
)

// ValidKey reports whether code names a known key.
func ValidKey(code int32) bool {
	return code >= 0 && code < int32(keyCount)
}

var keyNames = map[string]Key{
	"a": KeyA, "b": KeyB, "c": KeyC, "d": KeyD, "e": KeyE, "f": KeyF,
	"g": KeyG, "h": KeyH, "i": KeyI, "j": KeyJ, "k": KeyK, "l": KeyL,
	"m": KeyM, "n": KeyN, "o": KeyO, "p": KeyP, "q": KeyQ, "r": KeyR,
	"s": KeyS, "t": KeyT, "u": KeyU, "v": KeyV, "w": KeyW, "x": KeyX,
	"y": KeyY, "z": KeyZ,
	"num0": Key0, "num1": Key1, "num2": Key2, "num3": Key3, "num4": Key4,
	"num5": Key5, "num6": Key6, "num7": Key7, "num8": Key8, "num9": Key9,
	"space": KeySpace, "enter": KeyEnter, "escape": KeyEscape,
	"tab": KeyTab, "backspace": KeyBackspace,
	"left_shift": KeyLeftShift, "right_shift": KeyRightShift,
	"left_ctrl": KeyLeftCtrl, "right_ctrl": KeyRightCtrl,
	"left_alt": KeyLeftAlt, "right_alt": KeyRightAlt,
	"up": KeyUp, "down": KeyDown, "left": KeyLeft, "right": KeyRight,
	"f1": KeyF1, "f2": KeyF2, "f3": KeyF3, "f4": KeyF4, "f5": KeyF5,
	"f6": KeyF6, "f7": KeyF7, "f8": KeyF8, "f9": KeyF9, "f10": KeyF10,
	"f11": KeyF11, "f12": KeyF12,
}

// KeyNames returns the name-to-code map used to surface key constants
// to scripts. The returned map is a copy.
func KeyNames() map[string]int32 {
	out := make(map[string]int32, len(keyNames))
	for name, code := range keyNames {
		out[name] = int32(code)
	}
	return out
}

// KeyByName looks a key up by its script-facing name.
func KeyByName(name string) (Key, bool) {
	k, ok := keyNames[name]
	return k, ok
}

// MouseButton is a mouse button code.
type MouseButton int32

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
	MouseBack
	MouseForward

	mouseButtonCount // sentinel, keep last
)

// ValidMouseButton reports whether code names a known mouse button.
func ValidMouseButton(code int32) bool {
	return code >= 0 && code < int32(mouseButtonCount)
}

var mouseButtonNames = map[string]MouseButton{
	"left":    MouseLeft,
	"right":   MouseRight,
	"middle":  MouseMiddle,
	"back":    MouseBack,
	"forward": MouseForward,
}

// MouseButtonNames returns the name-to-code map used to surface button
// constants to scripts. The returned map is a copy.
func MouseButtonNames() map[string]int32 {
	out := make(map[string]int32, len(mouseButtonNames))
	for name, code := range mouseButtonNames {
		out[name] = int32(code)
	}
	return out
}
