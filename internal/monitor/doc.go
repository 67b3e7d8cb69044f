// Package monitor is the terminal live view of the project list.
//
// The view is a bubbletea model fed by a render surface: every render of the
// cache pushes the newest View into a one-slot channel which the model
// drains. Operations run as commands against the controller, so the model
// never blocks on the network.
package monitor
