// Command filmstrip converts already-parsed vector-movie tag streams into
// self-contained SVG documents (spec.md §6).
package main

func main() {
	execute()
}
