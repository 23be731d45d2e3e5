package usecase

import (
	"crypto/rand"
)

// 紛らわしい文字(0/O, 1/I)を除いた32文字
const txRefAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const txRefLength = 12

// NewTxRef は12文字(60bit)のランダムな参照コードを作る
func NewTxRef() (string, error) {
	buf := make([]byte, txRefLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	out := make([]byte, txRefLength)
	for i, b := range buf {
		//256は32で割り切れるので偏らない
		out[i] = txRefAlphabet[int(b)%len(txRefAlphabet)]
	}
	return string(out), nil
}
