package playback

const eventBufferSize = 16

// Subscription provides per-type event channels for a subscriber.
// Delivery is non-blocking: a subscriber that stops draining loses
// events rather than stalling the service.
type Subscription struct {
	StateChanged     <-chan StateChange
	TrackChanged     <-chan TrackChange
	PositionChanged  <-chan PositionChange
	SelectionChanged <-chan SelectionChange
	TracksAdded      <-chan TracksAdded
	Error            <-chan ErrorEvent
	Done             <-chan struct{}

	// Internal write channels
	stateCh     chan StateChange
	trackCh     chan TrackChange
	positionCh  chan PositionChange
	selectionCh chan SelectionChange
	tracksCh    chan TracksAdded
	errorCh     chan ErrorEvent
	doneCh      chan struct{}
}

// newSubscription creates a new subscription with buffered channels.
func newSubscription() *Subscription {
	s := &Subscription{
		stateCh:     make(chan StateChange, eventBufferSize),
		trackCh:     make(chan TrackChange, eventBufferSize),
		positionCh:  make(chan PositionChange, eventBufferSize),
		selectionCh: make(chan SelectionChange, eventBufferSize),
		tracksCh:    make(chan TracksAdded, eventBufferSize),
		errorCh:     make(chan ErrorEvent, eventBufferSize),
		doneCh:      make(chan struct{}),
	}
	s.StateChanged = s.stateCh
	s.TrackChanged = s.trackCh
	s.PositionChanged = s.positionCh
	s.SelectionChanged = s.selectionCh
	s.TracksAdded = s.tracksCh
	s.Error = s.errorCh
	s.Done = s.doneCh
	return s
}

// close signals subscribers to stop by closing doneCh.
func (s *Subscription) close() {
	close(s.doneCh)
}

func (s *Subscription) sendState(e StateChange) {
	select {
	case s.stateCh <- e:
	default:
		// Drop if buffer full
	}
}

func (s *Subscription) sendTrack(e TrackChange) {
	select {
	case s.trackCh <- e:
	default:
	}
}

func (s *Subscription) sendPosition(e PositionChange) {
	select {
	case s.positionCh <- e:
	default:
	}
}

func (s *Subscription) sendSelection(e SelectionChange) {
	select {
	case s.selectionCh <- e:
	default:
	}
}

func (s *Subscription) sendTracksAdded(e TracksAdded) {
	select {
	case s.tracksCh <- e:
	default:
	}
}

func (s *Subscription) sendError(e ErrorEvent) {
	select {
	case s.errorCh <- e:
	default:
	}
}
