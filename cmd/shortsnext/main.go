// Command shortsnext resolves the next videos for a YouTube Shorts URL from
// the command line.
package main

func main() {
	Execute()
}
