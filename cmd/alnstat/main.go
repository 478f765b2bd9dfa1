// 8 Nov 2024

package main

func main() {
	Execute() // initialize cobra commands
}
