// Package commands defines the tripctl CLI.
//
// Commands
//
//   - use <name>       Pick the participant this device acts as
//   - logout           Forget the current participant
//   - whoami           Print the current participant
//   - participants     List the trip roster
//   - expense ...      Add, edit, remove and list expenses
//   - item ...         Manage the shared shopping list
//   - settle           Preview the settlement, or archive it with --note
//   - history ...      Browse archived settlements
//   - watch ...        Follow live changes
//
// # Implementation
//
// The root command loads ~/.tripsplit/session.json and builds Connect
// clients carrying the session token before any subcommand runs. Every
// command except use, logout and participants requires a selected
// participant.
package commands
