package main

import "github.com/parvatisuthar/fileexpo/app/cmd"

func main() {
	cmd.Execute()
}
