package model

type Chain string
type Network string

var (
	Ethereum Chain = "ethereum"
)

var (
	Mainnet Network = "mainnet"
	Sepolia Network = "sepolia"
)
