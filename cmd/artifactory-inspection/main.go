package main

import "artifactory-inspection/internal/cli"

func main() {
	cli.Execute()
}
