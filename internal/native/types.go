package native

// Native event types.
const (
	// Mouse
	TypeClick      = "click"
	TypeDblClick   = "dblclick"
	TypeMouseDown  = "mousedown"
	TypeMouseUp    = "mouseup"
	TypeMouseOver  = "mouseover"
	TypeMouseOut   = "mouseout"
	TypeMouseMove  = "mousemove"
	TypeMouseWheel = "mousewheel"

	// Keyboard, fired in keydown, keypress, keyup order.
	TypeKeyPress = "keypress"
	TypeKeyDown  = "keydown"
	TypeKeyUp    = "keyup"
	TypePaste    = "paste"

	// Focus
	TypeBlur  = "blur"
	TypeFocus = "focus"

	// Forms
	TypeChange = "change"
	TypeSelect = "select"
	TypeSubmit = "submit"
	TypeReset  = "reset"

	// Document and window
	TypeLoad             = "load"
	TypeUnload           = "unload"
	TypeHelp             = "help"
	TypeResize           = "resize"
	TypeScroll           = "scroll"
	TypeReadyStateChange = "readystatechange"
	TypeContextMenu      = "contextmenu"
	TypeError            = "error"
	TypeContentLoaded    = "DOMContentLoaded"

	// Legacy engine specific
	TypeMouseEnter = "mouseenter"
	TypeMouseLeave = "mouseleave"
	TypeDeactivate = "deactivate"
	TypeFocusIn    = "focusin"
	TypeFocusOut   = "focusout"
	TypeHashChange = "hashchange"
	TypeAbort      = "abort"
	TypeActivate   = "activate"
	TypeAfterPrint = "afterprint"
	TypeCopy       = "copy"
	TypeCut        = "cut"
)

// LegacyPrefix is prepended to event types by the legacy mechanism.
const LegacyPrefix = "on"

// LegacyName returns the legacy registration name for typ.
func LegacyName(typ string) string {
	return LegacyPrefix + typ
}
