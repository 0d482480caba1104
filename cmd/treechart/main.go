// Command treechart draws collapsible tree charts of JSON and YAML state
// files, either in a window or as SVG.
package main

func main() {
	execute()
}
