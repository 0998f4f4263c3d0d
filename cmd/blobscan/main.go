package main

import "github.com/dbsmedya/blobscan/cmd/blobscan/cmd"

func main() {
	cmd.Execute()
}
