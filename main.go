package main

import "image-admin/cmd"

func main() {
	cmd.Execute()
}
