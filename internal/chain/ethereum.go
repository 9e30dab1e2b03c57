package chain

func init() {
	// Ethereum Mainnet (chainID 1)
	Register(&Params{
		Name:        "mainnet",
		ChainID:     1,
		NativeToken: "ETH",
		Decimals:    18,
		CoinType:    60,
		Purpose:     44,
	})

	// Ethereum Sepolia Testnet (chainID 11155111)
	Register(&Params{
		Name:        "sepolia",
		ChainID:     11155111,
		NativeToken: "ETH",
		Decimals:    18,
		CoinType:    60,
		Purpose:     44,
		Testnet:     true,
	})

	// Polygon Mainnet (chainID 137)
	Register(&Params{
		Name:        "polygon",
		ChainID:     137,
		NativeToken: "POL",
		Decimals:    18,
		CoinType:    60,
		Purpose:     44,
	})

	// BNB Smart Chain Mainnet (chainID 56)
	Register(&Params{
		Name:        "bsc",
		ChainID:     56,
		NativeToken: "BNB",
		Decimals:    18,
		CoinType:    60,
		Purpose:     44,
	})
}
