package extract

import "bytes"

var serviceIDs = []struct {
	id      []byte
	service Service
}{
	{[]byte("com.apple.Telephony"), ServiceTelephony},
	{[]byte("com.apple.FaceTime"), ServiceFaceTime},
}

// CallService finds the earliest service identifier in b.
func CallService(b []byte) (Match[Service], bool) {
	best := Match[Service]{Start: -1}
	for _, s := range serviceIDs {
		idx := bytes.Index(b, s.id)
		if idx < 0 || (best.Start >= 0 && idx >= best.Start) {
			continue
		}
		best = Match[Service]{Value: s.service, Start: idx, End: idx + len(s.id)}
	}
	return best, best.Start >= 0
}
