package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRefResolver(t *testing.T) {
	owner := newFakeOwner()
	withRef := owner.add(t, 1, KindWindow)
	withRef.SetScreenRef("pause_menu")
	bare := owner.add(t, 2, KindWindow)

	screen, ok := RefResolver.ResolveScreen(withRef)
	assert.True(t, ok)
	assert.Equal(t, "pause_menu", screen.ScreenName())

	_, ok = RefResolver.ResolveScreen(bare)
	assert.False(t, ok)

	_, ok = RefResolver.ResolveScreen(nil)
	assert.False(t, ok)
}

func TestNodePredicate_Accept(t *testing.T) {
	owner := newFakeOwner()
	node := owner.add(t, 1, KindWindow)

	var none NodePredicate
	assert.True(t, none.Accept(node))

	disabledOnly := NodePredicate(func(n *Node) bool { return !n.IsEnabled() })
	assert.False(t, disabledOnly.Accept(node))
}
