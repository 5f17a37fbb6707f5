package main

import "github.com/artshishkin/video-filter/internal/cli"

func main() {
	cli.Main()
}
