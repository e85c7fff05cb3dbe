package main

import (
	"github.com/Rakhulsr/khayal-shop/app/cmd"
	"github.com/Rakhulsr/khayal-shop/app/configs"
	"github.com/shopspring/decimal"
)

func main() {
	decimal.MarshalJSONWithoutQuotes = true

	env := configs.LoadEnv()
	cmd.RunCli(env)
}
