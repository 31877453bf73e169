// Command migrate applies database migrations and seeds demo data.
package main

func main() {
	Execute()
}
