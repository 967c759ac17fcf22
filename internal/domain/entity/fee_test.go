package entity

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateFee(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		fee     Fee
		wantErr bool
	}{
		{name: "nil fee", fee: nil, wantErr: true},
		{name: "basic", fee: BasicFee{Amount: big.NewInt(7500)}},
		{name: "zero tron", fee: TronFees{Amount: big.NewInt(0)}},
		{name: "missing amount", fee: GasFees{Price: big.NewInt(1), Limit: big.NewInt(21000)}, wantErr: true},
		{name: "negative ripple", fee: RippleFees{Amount: big.NewInt(-1)}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFee(tt.fee)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidFee)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestEip1559NetworkAmount(t *testing.T) {
	t.Parallel()

	fee := Eip1559{Amount: big.NewInt(1500), L1DataFee: big.NewInt(500)}
	assert.Equal(t, "1000", fee.NetworkAmount().String())
	assert.Equal(t, "1500", fee.Total().String())
	assert.Equal(t, FeeKindEip1559, fee.Kind())

	assert.Equal(t, "0", BasicFee{}.Total().String())
}

func TestTransactionResultTerminal(t *testing.T) {
	t.Parallel()

	assert.True(t, Confirmed{}.IsTerminal())
	assert.True(t, Failed{Reason: "reverted"}.IsTerminal())
	assert.False(t, Pending{}.IsTerminal())
	assert.False(t, NotFound{}.IsTerminal())
	assert.Equal(t, "reverted", FailureReason(Failed{Reason: "reverted"}))
	assert.Empty(t, FailureReason(Confirmed{}))
}
