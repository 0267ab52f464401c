package model

type Output struct {
	Amount   Amount
	PKScript Script
}
