// Package tui implements the interactive port-switcher dashboard.
//
// The dashboard shows the switch's ports as a selectable grid with the
// active port highlighted. Ports are switched with the digit keys or by
// moving the cursor and pressing enter; the buzzer and LCD timeout are
// reachable from the same screen. Device calls run asynchronously as
// bubbletea commands, but only one is ever in flight: the switch cannot
// handle overlapping commands, so key input is ignored while a command is
// pending.
package tui
