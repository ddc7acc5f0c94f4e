// Package ui contains the Bubble Tea program that browses the channel catalog.
// The Model type focuses on message orchestration while dedicated helpers own
// navigation, input, rendering and state updates.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages.
//   - While the add-channel form is open, key presses go to the form. Every
//     other message is routed through a typed handler registry so each
//     tea.Msg is handled by a focused function.
//   - Menu actions run through the internal/ui/command bus and never touch the
//     catalog. They return a menu.IntentMsg that the model applies with the
//     dispatcher, so the catalog and selection are only mutated on the update
//     loop.
//
// State ownership:
//   - The catalog.Store owns channels and the selection.Controller owns the
//     playing channel. The model subscribes to both and rebuilds any open
//     channel list after a change.
//   - Menu level state lives in internal/ui/state.Level, which tracks items,
//     filtering, selection marks and viewport calculations. The filter of the
//     visible channel list is mirrored into the search store.
//
// Backend interactions:
//   - A backend.Watcher polls the tmux player window; Update waits for those
//     events and hands them to the dispatcher, which records the player status
//     shown in the details panel.
package ui
