package main

import "github.com/G-Villarinho/previsao-tempo-arvore-decisao/internal/cli"

func main() {
	cli.Execute()
}
