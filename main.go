package main

import "github.com/dcode-github/hostel_listing_system/backend/cmd"

func main() {
	cmd.Execute()
}
