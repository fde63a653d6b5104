package errno

// WSAError is a Winsock error code as returned by WSAGetLastError.
type WSAError uint32

// Winsock error codes.
const (
	WSA_OK                WSAError = 0
	WSAEINTR              WSAError = 10004
	WSAEBADF              WSAError = 10009
	WSAEACCES             WSAError = 10013
	WSAEFAULT             WSAError = 10014
	WSAEINVAL             WSAError = 10022
	WSAEMFILE             WSAError = 10024
	WSAEWOULDBLOCK        WSAError = 10035
	WSAEINPROGRESS        WSAError = 10036
	WSAEALREADY           WSAError = 10037
	WSAENOTSOCK           WSAError = 10038
	WSAEDESTADDRREQ       WSAError = 10039
	WSAEMSGSIZE           WSAError = 10040
	WSAEPROTOTYPE         WSAError = 10041
	WSAENOPROTOOPT        WSAError = 10042
	WSAEPROTONOSUPPORT    WSAError = 10043
	WSAESOCKTNOSUPPORT    WSAError = 10044
	WSAEOPNOTSUPP         WSAError = 10045
	WSAEPFNOSUPPORT       WSAError = 10046
	WSAEAFNOSUPPORT       WSAError = 10047
	WSAEADDRINUSE         WSAError = 10048
	WSAEADDRNOTAVAIL      WSAError = 10049
	WSAENETDOWN           WSAError = 10050
	WSAENETUNREACH        WSAError = 10051
	WSAENETRESET          WSAError = 10052
	WSAECONNABORTED       WSAError = 10053
	WSAECONNRESET         WSAError = 10054
	WSAENOBUFS            WSAError = 10055
	WSAEISCONN            WSAError = 10056
	WSAENOTCONN           WSAError = 10057
	WSAESHUTDOWN          WSAError = 10058
	WSAETOOMANYREFS       WSAError = 10059
	WSAETIMEDOUT          WSAError = 10060
	WSAECONNREFUSED       WSAError = 10061
	WSAELOOP              WSAError = 10062
	WSAENAMETOOLONG       WSAError = 10063
	WSAEHOSTDOWN          WSAError = 10064
	WSAEHOSTUNREACH       WSAError = 10065
	WSAENOTEMPTY          WSAError = 10066
	WSAEPROCLIM           WSAError = 10067
	WSAEUSERS             WSAError = 10068
	WSAEDQUOT             WSAError = 10069
	WSAESTALE             WSAError = 10070
	WSAEREMOTE            WSAError = 10071
	WSAHOST_NOT_FOUND     WSAError = 11001
	WSATRY_AGAIN          WSAError = 11002
	WSANO_RECOVERY        WSAError = 11003
	WSANO_DATA            WSAError = 11004
)

// Winsock reports its codes through the same channel as Win32 errors; this
// range tells them apart.
const wsaBase, wsaLimit = 10000, 12000

var wsaErrors = map[WSAError]Errno{
	WSA_OK:             ESUCCESS,
	WSAEINTR:           EINTR,
	WSAEBADF:           EBADF,
	WSAEACCES:          EACCES,
	WSAEFAULT:          EFAULT,
	WSAEINVAL:          EINVAL,
	WSAEMFILE:          EMFILE,
	WSAEWOULDBLOCK:     EWOULDBLOCK,
	WSAEINPROGRESS:     EINPROGRESS,
	WSAEALREADY:        EALREADY,
	WSAENOTSOCK:        ENOTSOCK,
	WSAEDESTADDRREQ:    EDESTADDRREQ,
	WSAEMSGSIZE:        EMSGSIZE,
	WSAEPROTOTYPE:      EPROTOTYPE,
	WSAENOPROTOOPT:     ENOPROTOOPT,
	WSAEPROTONOSUPPORT: EPROTONOSUPPORT,
	WSAESOCKTNOSUPPORT: ESOCKTNOSUPPORT,
	WSAEOPNOTSUPP:      EOPNOTSUPP,
	WSAEPFNOSUPPORT:    EPFNOSUPPORT,
	WSAEAFNOSUPPORT:    EAFNOSUPPORT,
	WSAEADDRINUSE:      EADDRINUSE,
	WSAEADDRNOTAVAIL:   EADDRNOTAVAIL,
	WSAENETDOWN:        ENETDOWN,
	WSAENETUNREACH:     ENETUNREACH,
	WSAENETRESET:       ENETRESET,
	WSAECONNABORTED:    ECONNABORTED,
	WSAECONNRESET:      ECONNRESET,
	WSAENOBUFS:         ENOBUFS,
	WSAEISCONN:         EISCONN,
	WSAENOTCONN:        ENOTCONN,
	WSAESHUTDOWN:       ESHUTDOWN,
	WSAETOOMANYREFS:    ETOOMANYREFS,
	WSAETIMEDOUT:       ETIMEDOUT,
	WSAECONNREFUSED:    ECONNREFUSED,
	WSAELOOP:           ELOOP,
	WSAENAMETOOLONG:    ENAMETOOLONG,
	WSAEHOSTDOWN:       EHOSTDOWN,
	WSAEHOSTUNREACH:    EHOSTUNREACH,
	WSAENOTEMPTY:       ENOTEMPTY,
	WSAEPROCLIM:        EPROCLIM,
	WSAEUSERS:          EUSERS,
	WSAEDQUOT:          EDQUOT,
	WSAESTALE:          ESTALE,
	WSAEREMOTE:         EREMOTE,
	WSANO_DATA:         ENODATA,
}

// KnownWSAErrors returns every Winsock code the table translates.
func KnownWSAErrors() []WSAError {
	out := make([]WSAError, 0, len(wsaErrors))
	for code := range wsaErrors {
		out = append(out, code)
	}
	return out
}

// HostErrno is a resolver error as reported through h_errno.
type HostErrno int

// Resolver error values.
const (
	HostOK       HostErrno = 0
	HostNotFound HostErrno = 1
	TryAgain     HostErrno = 2
	NoRecovery   HostErrno = 3
	NoData       HostErrno = 4
)

// HostErrnoFromWSA translates the resolver subset of Winsock codes. Other
// codes leave h_errno untouched, which ok=false reports.
func HostErrnoFromWSA(code WSAError) (h HostErrno, ok bool) {
	switch code {
	case WSAHOST_NOT_FOUND:
		return HostNotFound, true
	case WSATRY_AGAIN:
		return TryAgain, true
	case WSANO_RECOVERY:
		return NoRecovery, true
	case WSANO_DATA:
		return NoData, true
	}
	return HostOK, false
}
