package connect

import (
	"context"

	"github.com/Mohsinsiddi/w3mint/internal/contract"
)

type factoryContracts struct {
	f   *contract.Factory
	src contract.SignerSource
}

// NewContracts adapts a contract factory. src may be nil when there is no
// wallet, in which case only read-only handles can be built.
func NewContracts(f *contract.Factory, src contract.SignerSource) Contracts {
	return &factoryContracts{f: f, src: src}
}

func (fc *factoryContracts) ReadOnly(ctx context.Context) (Minter, error) {
	n, err := fc.f.ReadOnly(ctx)
	if err != nil {
		return nil, err
	}
	return n, nil
}

func (fc *factoryContracts) WithSigner(ctx context.Context, account string) (Minter, error) {
	if fc.src == nil {
		return nil, ErrNoSigner
	}
	n, err := fc.f.WithSigner(ctx, fc.src, account)
	if err != nil {
		return nil, err
	}
	return n, nil
}
