package copy

// dispatch routes a pre-flighted (src, dest) pair to the handler for
// srcStat's kind. Devices are treated as regular files: the kernel exposes
// them as byte streams, and a byte copy of whatever it returns is correct
// for this engine's scope.
func dispatch(inv *invocation, src, dest string, srcStat Stat, destStat *Stat) error {
	switch srcStat.Kind {
	case KindDirectory:
		return copyDir(inv, src, dest, srcStat, destStat)
	case KindRegular, KindBlockDevice, KindCharDevice:
		return copyFile(inv, src, dest, srcStat, destStat)
	case KindSymlink:
		return copySymlink(inv, src, dest, srcStat, destStat)
	case KindSocket:
		return errSocket(dest)
	case KindFifo:
		return errFifoPipe(dest)
	default:
		return errUnknown(dest)
	}
}
