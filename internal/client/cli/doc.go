// Package cli is the interactive front end of the taskpad client.
//
// It reads one command per line, forwards it to the task lifecycle engine and
// prints the resulting view after every command. Tasks may be referenced by
// id or by their 1-based position in the last printed list.
//
// Commands:
//
//	help                  show available commands
//	list | l              print the current view
//	refresh               reload tasks from the server
//	add <title>           create a task; the next line is an optional file path
//	edit <id|n>           start editing a task
//	title <text>          change the draft title
//	file <path>           choose a replacement attachment
//	save                  commit the edit
//	cancel                leave edit mode
//	toggle <id|n>         flip the completed flag
//	delete <id|n>         delete a task (its attachment stays in the bucket)
//	exit | quit           leave the program
package cli
