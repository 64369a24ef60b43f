package soul

import (
	"errors"
	"strings"
)

// Action is an on-chain activity the backend observed for an asset.
type Action string

const (
	ActionSwap     Action = "SWAP"
	ActionMint     Action = "MINT"
	ActionVote     Action = "VOTE"
	ActionTransfer Action = "TRANSFER"
	ActionStake    Action = "STAKE"
)

var ErrUnknownAction = errors.New("unknown action")

var actionRewards = map[Action]uint64{
	ActionSwap:     10,
	ActionMint:     50,
	ActionVote:     5,
	ActionTransfer: 2,
	ActionStake:    25,
}

// ParseAction normalizes name to an Action with a known reward.
func ParseAction(name string) (Action, error) {
	a := Action(strings.ToUpper(strings.TrimSpace(name)))
	if _, ok := actionRewards[a]; !ok {
		return "", ErrUnknownAction
	}
	return a, nil
}

func (a Action) Reward() uint64 {
	return actionRewards[a]
}
