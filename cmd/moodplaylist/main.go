package main

import (
	"github.com/Alireza013/Mood-Playlist/cmd/moodplaylist/cmd"
)

func main() {
	cmd.Execute()
}
