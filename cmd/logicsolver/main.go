// Command logicsolver serves the logic solver over HTTP or MCP and runs its
// offline operations from the command line.
package main

func main() {
	Execute()
}
