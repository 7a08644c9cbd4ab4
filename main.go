package main

import "github.com/pga-platform/ms-go-paypal/cmd"

func main() {
	cmd.Execute()
}
