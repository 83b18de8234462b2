package main

import "github.com/nikogura/resume-render/cmd"

func main() {
	cmd.Execute()
}
